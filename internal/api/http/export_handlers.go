package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/md-ensino/medquest/internal/auth/middleware"
	"github.com/md-ensino/medquest/internal/export"
	"github.com/md-ensino/medquest/internal/question"
)

func exportOptions(r *http.Request) export.Options {
	q := r.URL.Query()
	return export.Options{
		IncludeHeader:    q.Get("header") != "0",
		IncludeFooter:    q.Get("footer") != "0",
		IncludeWatermark: q.Get("watermark") == "1",
		Professor:        q.Get("professor"),
		Institution:      q.Get("institution"),
		Discipline:       q.Get("discipline"),
	}
}

// GET /questions/export?format=csv|socrative|word|print exports all of the
// owner's questions in one document.
// GET /questions/{questionID}/export?format=... exports a single question.
func ExportQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := authmw.SubjectFromContext(r.Context())
		if ownerID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var qs []question.Question
		if id := chi.URLParam(r, "questionID"); id != "" {
			q, err := store.Get(id, ownerID)
			if errors.Is(err, question.ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			qs = []question.Question{q}
		} else {
			var err error
			qs, err = store.ListByOwner(ownerID)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		}

		opt := exportOptions(r)
		var err error
		switch r.URL.Query().Get("format") {
		case "", "csv":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="questoes.csv"`)
			err = export.WriteCSV(w, qs, opt)
		case "socrative":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="questoes-socrative.csv"`)
			err = export.WriteSocrativeCSV(w, qs)
		case "word":
			w.Header().Set("Content-Type", "application/msword")
			w.Header().Set("Content-Disposition", `attachment; filename="questoes.doc"`)
			err = export.WriteWordHTML(w, qs, opt)
		case "print":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			err = export.WritePrintHTML(w, qs, opt)
		default:
			http.Error(w, "unknown format", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
		}
	}
}
