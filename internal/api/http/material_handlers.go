package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/md-ensino/medquest/internal/auth/middleware"
	"github.com/md-ensino/medquest/internal/storage"
)

const maxMaterialSize = 20 << 20 // 20 MiB

// POST /materials (multipart, field "file") stores reference material and
// returns the ref to pass as file_ref on /questions/generate.
func UploadMaterialHandler(store storage.MaterialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authmw.SubjectFromContext(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxMaterialSize)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		ref, err := store.Save(uuid.NewString()+"-"+hdr.Filename, f)
		if err != nil {
			if errors.Is(err, storage.ErrBadRef) {
				http.Error(w, "invalid file name", http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"ref": ref})
	}
}

// GET /materials/{ref}
func GetMaterialHandler(store storage.MaterialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authmw.SubjectFromContext(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		rc, err := store.Open(chi.URLParam(r, "ref"))
		if errors.Is(err, storage.ErrBadRef) || errors.Is(err, os.ErrNotExist) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	}
}
