package vault

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petvault/internal/domain/pets"
	"petvault/internal/domain/profiles"
	"petvault/internal/domain/timeline"
	"petvault/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, timelineSvc *timeline.Service, profilesSvc *profiles.Service) {
	r.Post("/entries/{entryID}/files", addDocumentHandler(svc, petsSvc, timelineSvc, profilesSvc))
	r.Get("/pets/{petID}/files", listDocumentsHandler(svc, petsSvc))
	r.Delete("/files/{fileID}", deleteDocumentHandler(svc, petsSvc))
}

type addDocumentRequest struct {
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}

type documentResponse struct {
	ID         string    `json:"id"`
	EntryID    string    `json:"entry_id"`
	PetID      string    `json:"pet_id"`
	FileURL    string    `json:"file_url"`
	FileType   string    `json:"file_type,omitempty"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func addDocumentHandler(svc *Service, petsSvc *pets.Service, timelineSvc *timeline.Service, profilesSvc *profiles.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		entryID := chi.URLParam(r, "entryID")
		entry, err := timelineSvc.GetByID(r.Context(), entryID)
		if err != nil {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		owner, err := petsSvc.OwnerOf(r.Context(), entry.PetID)
		if err != nil || owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req addDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// El cap de documentos del plan basic se cuenta sobre todas las mascotas del dueño.
		plan := profilesSvc.PlanOf(r.Context(), claims.UserID)
		var ownerPetIDs []string
		if plan.MaxDocuments() > 0 {
			ownPets, err := petsSvc.ListByOwner(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			for _, p := range ownPets {
				ownerPetIDs = append(ownerPetIDs, p.ID)
			}
		}

		d, err := svc.Add(r.Context(), entryID, entry.PetID, plan.MaxDocuments(), ownerPetIDs, AddInput{
			FileURL:  req.FileURL,
			FileType: req.FileType,
			FileName: req.FileName,
			FileSize: req.FileSize,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrPlanLimit):
				http.Error(w, "document limit reached: upgrade to Pro for unlimited uploads", http.StatusForbidden)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toDocumentResponse(d))
	}
}

func listDocumentsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := petsSvc.OwnerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		limit := 0
		if l := strings.TrimSpace(r.URL.Query().Get("limit")); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.Recent(r.Context(), petID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]documentResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDocumentResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func deleteDocumentHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		fileID := chi.URLParam(r, "fileID")
		d, err := svc.GetByID(r.Context(), fileID)
		if err != nil {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}

		owner, err := petsSvc.OwnerOf(r.Context(), d.PetID)
		if err != nil || owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), fileID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toDocumentResponse(d Document) documentResponse {
	return documentResponse{
		ID:         d.ID,
		EntryID:    d.EntryID,
		PetID:      d.PetID,
		FileURL:    d.FileURL,
		FileType:   d.FileType,
		FileName:   d.FileName,
		FileSize:   d.FileSize,
		UploadedAt: d.UploadedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
