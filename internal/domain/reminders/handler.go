package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petvault/internal/domain/pets"
	"petvault/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc, petsSvc))
		rr.Get("/", listRemindersHandler(svc, petsSvc))
	})

	r.Post("/reminders/{reminderID}/complete", completeReminderHandler(svc, petsSvc))
}

type createReminderRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"` // YYYY-MM-DD
	Type      string `json:"type"`
	Recurring bool   `json:"recurring"`
}

type reminderResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	PetID             string    `json:"pet_id"`
	Title             string    `json:"title"`
	Date              string    `json:"date"`
	Type              string    `json:"type,omitempty"`
	Status            Status    `json:"status"`
	Recurring         bool      `json:"recurring"`
	RecurringInterval string    `json:"recurring_interval,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func createReminderHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rem, err := svc.Create(r.Context(), claims.UserID, petID, CreateInput{
			Title:     req.Title,
			Date:      date,
			Type:      req.Type,
			Recurring: req.Recurring,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

func listRemindersHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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
		if st := strings.TrimSpace(r.URL.Query().Get("status")); st != "" {
			switch Status(st) {
			case StatusPending, StatusDone:
				filter.Status = Status(st)
			default:
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderResponse(rem))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func completeReminderHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		reminderID := chi.URLParam(r, "reminderID")
		rem, err := svc.GetByID(r.Context(), reminderID)
		if err != nil {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}

		owner, err := petsSvc.OwnerOf(r.Context(), rem.PetID)
		if err != nil || owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		updated, err := svc.Complete(r.Context(), reminderID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(updated))
	}
}

func toReminderResponse(rem Reminder) reminderResponse {
	return reminderResponse{
		ID:                rem.ID,
		UserID:            rem.UserID,
		PetID:             rem.PetID,
		Title:             rem.Title,
		Date:              rem.Date.Format("2006-01-02"),
		Type:              rem.Type,
		Status:            rem.Status,
		Recurring:         rem.Recurring,
		RecurringInterval: string(rem.RecurringInterval),
		CreatedAt:         rem.CreatedAt,
		UpdatedAt:         rem.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
