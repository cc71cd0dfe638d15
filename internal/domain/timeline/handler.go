package timeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petvault/internal/domain/pets"
	"petvault/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/entries", func(er chi.Router) {
		er.Post("/", createEntryHandler(svc, petsSvc))
		er.Get("/", listEntriesHandler(svc, petsSvc))
	})

	r.Delete("/entries/{entryID}", deleteEntryHandler(svc, petsSvc))
}

// createEntryRequest es el cuerpo para registrar una entrada de salud.
type createEntryRequest struct {
	Category    Category `json:"category" enums:"vaccine,illness,food,weight,behavior,vet_visit,other"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Metadata    Metadata `json:"metadata"`
}

type entryResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Category    Category  `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createEntryHandler godoc
// @Summary Crear entrada de salud
// @Description Registra una entrada en la línea de tiempo de la mascota (vacuna, enfermedad, peso, etc.). Solo el dueño.
// @Tags timeline
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createEntryRequest true "Datos de la entrada; date en formato YYYY-MM-DD"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / date inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/entries [post]
func createEntryHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), petID, CreateInput{
			Category:    req.Category,
			Title:       req.Title,
			Description: req.Description,
			Date:        date,
			Metadata:    req.Metadata,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// listEntriesHandler godoc
// @Summary Listar entradas de salud
// @Description Lista la línea de tiempo de la mascota (más nuevas primero). Filtros: ?category=, ?limit=.
// @Tags timeline
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param category query string false "Filtrar por categoría"
// @Param limit query int false "Máximo de entradas"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/entries [get]
func listEntriesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		filter := ListFilter{}
		if c := strings.TrimSpace(r.URL.Query().Get("category")); c != "" {
			cat := Category(c)
			if !ValidCategory(cat) {
				http.Error(w, "unknown category", http.StatusBadRequest)
				return
			}
			filter.Category = cat
		}
		if l := strings.TrimSpace(r.URL.Query().Get("limit")); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func deleteEntryHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		entryID := chi.URLParam(r, "entryID")
		e, err := svc.GetByID(r.Context(), entryID)
		if err != nil {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		owner, err := petsSvc.OwnerOf(r.Context(), e.PetID)
		if err != nil || owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), entryID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		PetID:       e.PetID,
		Category:    e.Category,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
