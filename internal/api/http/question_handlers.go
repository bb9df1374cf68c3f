package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/md-ensino/medquest/internal/auth/middleware"
	"github.com/md-ensino/medquest/internal/generator"
	"github.com/md-ensino/medquest/internal/question"
)

// Generator abstracts the webhook client so handlers can be tested without
// the network.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (any, error)
}

type generateReq struct {
	Theme      string `json:"theme"`
	Objective  string `json:"objective"`
	Difficulty string `json:"difficulty"`
	Model      string `json:"model"`
	Reference  string `json:"reference"`
	FileRef    string `json:"file_ref,omitempty"`
}

type generateResp struct {
	Question question.Question `json:"question"`
	Warnings []string          `json:"warnings,omitempty"`
}

// User-facing retry messages, by failure class. Parse and fetch failures are
// distinct: a fetched-but-unusable response is still a generation error.
func generateErrMessage(err error) string {
	var fe *generator.FetchError
	if errors.As(err, &fe) {
		switch fe.Kind {
		case generator.FetchTimeout:
			return "O servidor demorou muito para responder. Tente novamente mais tarde."
		case generator.FetchNetwork:
			return "Erro de conexão com o servidor. Verifique sua internet e tente novamente."
		}
	}
	return "Erro ao gerar questão. Tente novamente."
}

// POST /questions/generate
func GenerateQuestionHandler(gen Generator, parser *generator.Parser, store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := authmw.SubjectFromContext(r.Context())
		if ownerID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req generateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Theme == "" {
			http.Error(w, "theme required", http.StatusBadRequest)
			return
		}

		env, err := gen.Generate(r.Context(), generator.Request{
			Theme:      req.Theme,
			Objective:  req.Objective,
			Difficulty: req.Difficulty,
			Model:      req.Model,
			FileRef:    req.FileRef,
		})
		if err != nil {
			log.Printf("generate fetch failed: %v", err)
			http.Error(w, generateErrMessage(err), http.StatusBadGateway)
			return
		}

		res, err := parser.Parse(env)
		if err != nil {
			log.Printf("generate parse failed: %v", err)
			http.Error(w, generateErrMessage(err), http.StatusBadGateway)
			return
		}
		for _, warn := range res.Warnings {
			log.Printf("generate degraded (theme=%q): %s", req.Theme, warn)
		}

		q := res.Question
		q.ID = uuid.NewString()
		q.OwnerID = ownerID
		q.CreatedAt = time.Now().Unix()
		if q.Reference == "" {
			q.Reference = req.Reference
		}
		if err := store.Put(q); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(generateResp{Question: q, Warnings: res.Warnings})
	}
}

// GET /questions
func ListQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := authmw.SubjectFromContext(r.Context())
		if ownerID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		qs, err := store.ListByOwner(ownerID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if qs == nil {
			qs = []question.Question{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(qs)
	}
}

// GET /questions/{questionID}
func GetQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := authmw.SubjectFromContext(r.Context())
		if ownerID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q, err := store.Get(chi.URLParam(r, "questionID"), ownerID)
		if errors.Is(err, question.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(q)
	}
}
