package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petvault/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// UnavailableReply es el mensaje fijo para cualquier falla no mapeada.
// Nunca se devuelven detalles del proveedor ni del store.
const UnavailableReply = "Assistant is temporarily unavailable. Please try again shortly."

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/chat", chatHandler(svc))
	r.Get("/me/chat/history", chatHistoryHandler(svc))
}

type chatRequest struct {
	Message string `json:"message"`
	PetID   string `json:"petId"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type chatError struct {
	Error string `json:"error"`
}

type chatMessageResponse struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// chatHandler godoc
// @Summary Enviar mensaje al asistente
// @Description Procesa un turno de chat. Funciona anónimo (sin contexto ni persistencia) o autenticado (rate limit de 20 msgs/hora, contexto de plan y mascota, historial persistido).
// @Tags assistant
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token (opcional)"
// @Param payload body chatRequest true "message requerido; petId opcional"
// @Success 200 {object} chatResponse
// @Failure 400 {object} chatError "Message is required"
// @Failure 429 {object} chatError "Rate limit exceeded"
// @Failure 500 {object} chatError "Assistant unavailable"
// @Router /chat [post]
func chatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, chatError{Error: "Message is required"})
			return
		}

		// Anónimo es válido: sin claims se procesa sin rate limit ni contexto.
		userID := ""
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			userID = claims.UserID
		}

		reply, err := svc.ProcessTurn(r.Context(), TurnInput{
			UserID:  userID,
			Message: req.Message,
			PetID:   req.PetID,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyMessage):
				writeJSON(w, http.StatusBadRequest, chatError{Error: "Message is required"})
			case errors.Is(err, ErrRateLimited):
				writeJSON(w, http.StatusTooManyRequests, chatError{
					Error: fmt.Sprintf("Rate limit exceeded. Max %d messages per hour.", svc.cfg.RateLimitPerHour),
				})
			default:
				writeJSON(w, http.StatusInternalServerError, chatError{Error: UnavailableReply})
			}
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{Response: reply})
	}
}

// chatHistoryHandler devuelve la transcripción reciente (orden cronológico).
func chatHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		msgs, err := svc.History(r.Context(), claims.UserID, 0)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]chatMessageResponse, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, chatMessageResponse{
				Role:      m.Role,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
