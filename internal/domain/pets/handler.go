package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petvault/internal/domain/profiles"
	"petvault/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, profilesSvc *profiles.Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, profilesSvc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name        string   `json:"name"`
	Breed       string   `json:"breed"`
	Gender      string   `json:"gender"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"` // kg
	PhotoURL    string   `json:"photo_url"`
	MicrochipID string   `json:"microchip_id"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string  `json:"name"`
	Breed       *string  `json:"breed"`
	Gender      *string  `json:"gender"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	PhotoURL    *string  `json:"photo_url"`
	MicrochipID *string  `json:"microchip_id"`
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"user_id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Age         *int      `json:"age,omitempty"`
	Weight      *float64  `json:"weight,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	MicrochipID string    `json:"microchip_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota para el usuario autenticado. El plan basic admite 1 mascota; superar el límite devuelve 403.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "plan limit reached"
// @Router /pets [post]
func createPetHandler(svc *Service, profilesSvc *profiles.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		plan := profilesSvc.PlanOf(r.Context(), claims.UserID)

		p, err := svc.Create(r.Context(), claims.UserID, plan.MaxPets(), CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Gender:      req.Gender,
			Age:         req.Age,
			WeightKg:    req.Weight,
			PhotoURL:    req.PhotoURL,
			MicrochipID: req.MicrochipID,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrPlanLimit):
				http.Error(w, "plan limit reached: upgrade to Pro for unlimited pets", http.StatusForbidden)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if current.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Gender:      req.Gender,
			Age:         req.Age,
			WeightKg:    req.Weight,
			PhotoURL:    req.PhotoURL,
			MicrochipID: req.MicrochipID,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), petID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Breed:       p.Breed,
		Gender:      p.Gender,
		Age:         p.Age,
		Weight:      p.WeightKg,
		PhotoURL:    p.PhotoURL,
		MicrochipID: p.MicrochipID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
