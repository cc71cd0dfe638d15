package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"petvault/internal/domain/pets"
	"petvault/internal/domain/profiles"
	"petvault/internal/domain/reminders"
	"petvault/internal/domain/timeline"
	"petvault/internal/domain/vault"
	"petvault/internal/ports/completion"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrUnavailable  = errors.New("assistant unavailable")
)

// Config son los límites del procesador de turnos. Los ceros toman default.
type Config struct {
	RateLimitPerHour   int
	HistoryWindow      time.Duration
	MaxHistoryMessages int
	CompletionTimeout  time.Duration
}

const (
	defaultRateLimitPerHour   = 20
	defaultHistoryWindow      = 60 * time.Minute
	defaultMaxHistoryMessages = 10
	defaultCompletionTimeout  = 30 * time.Second
)

func (c Config) withDefaults() Config {
	if c.RateLimitPerHour <= 0 {
		c.RateLimitPerHour = defaultRateLimitPerHour
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = defaultHistoryWindow
	}
	if c.MaxHistoryMessages <= 0 {
		c.MaxHistoryMessages = defaultMaxHistoryMessages
	}
	if c.CompletionTimeout <= 0 {
		c.CompletionTimeout = defaultCompletionTimeout
	}
	return c
}

// Service procesa turnos de chat: rate limit, guardrail médico, armado de
// contexto, llamada al proveedor y persistencia del intercambio.
// No guarda estado entre turnos; todo lo cross-turn vive en el store.
type Service struct {
	messages MessageRepository
	provider completion.Provider

	profiles  *profiles.Service
	pets      *pets.Service
	timeline  *timeline.Service
	reminders *reminders.Service
	vault     *vault.Service

	cfg Config
	now func() time.Time
}

func NewService(
	messages MessageRepository,
	provider completion.Provider,
	profilesSvc *profiles.Service,
	petsSvc *pets.Service,
	timelineSvc *timeline.Service,
	remindersSvc *reminders.Service,
	vaultSvc *vault.Service,
	cfg Config,
) *Service {
	return &Service{
		messages:  messages,
		provider:  provider,
		profiles:  profilesSvc,
		pets:      petsSvc,
		timeline:  timelineSvc,
		reminders: remindersSvc,
		vault:     vaultSvc,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

type TurnInput struct {
	UserID  string // vacío = anónimo
	Message string
	PetID   string
}

// ProcessTurn ejecuta un turno completo y devuelve la respuesta.
// Orden estricto: rate limit (solo autenticados) -> guardrail -> contexto ->
// historial -> proveedor -> persistencia. La persistencia es best-effort:
// si falla se loguea y la respuesta sale igual.
func (s *Service) ProcessTurn(ctx context.Context, in TurnInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", ErrEmptyMessage
	}

	authenticated := strings.TrimSpace(in.UserID) != ""

	// Rate limiting (solo usuarios autenticados). Los anónimos quedan fuera
	// a propósito: el límite es cortesía, no frontera de seguridad.
	if authenticated {
		since := s.now().Add(-s.cfg.HistoryWindow)
		count, err := s.messages.CountSince(ctx, in.UserID, since)
		if err != nil {
			// Si el store no responde, no bloqueamos el turno.
			logrus.WithError(err).Warn("chat: rate limit count failed, skipping check")
		} else if count >= s.cfg.RateLimitPerHour {
			return "", ErrRateLimited
		}
	}

	// Guardrail médico: corta antes de armar contexto o llamar al proveedor.
	if isMedicalEmergency(in.Message) {
		if authenticated {
			s.persistExchange(ctx, in.UserID, in.Message, SafetyReply)
		}
		return SafetyReply, nil
	}

	// Contexto de plan y mascota (solo autenticados; si no, bloques vacíos).
	planContext := ""
	petContext := ""
	if authenticated {
		isPro := false
		if profile, err := s.profiles.GetOrCreate(ctx, in.UserID); err == nil {
			isPro = profile.PlanType == profiles.PlanPro
			planContext = buildPlanContext(profile.PlanType)
		} else {
			logrus.WithError(err).Warn("chat: profile fetch failed, continuing without plan context")
		}
		petContext = s.buildPetContext(ctx, in.UserID, strings.TrimSpace(in.PetID), isPro)
	}

	// Historial: últimos N, del más nuevo al más viejo, invertido para el prompt.
	var history []ChatMessage
	if authenticated {
		recent, err := s.messages.Recent(ctx, in.UserID, s.cfg.MaxHistoryMessages)
		if err != nil {
			logrus.WithError(err).Warn("chat: history fetch failed, continuing without history")
		} else {
			history = recent
		}
	}

	msgs := make([]completion.Message, 0, len(history)+2)
	msgs = append(msgs, completion.Message{
		Role:    completion.RoleSystem,
		Content: systemPrompt(planContext, petContext),
	})
	for i := len(history) - 1; i >= 0; i-- {
		msgs = append(msgs, completion.Message{
			Role:    string(history[i].Role),
			Content: history[i].Content,
		})
	}
	msgs = append(msgs, completion.Message{
		Role:    completion.RoleUser,
		Content: in.Message,
	})

	if s.provider == nil {
		return "", ErrUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CompletionTimeout)
	defer cancel()

	reply, err := s.provider.Complete(callCtx, msgs)
	if err != nil {
		// Nunca filtramos el error crudo del proveedor al caller.
		logrus.WithError(err).Error("chat: completion provider failed")
		return "", ErrUnavailable
	}

	if authenticated {
		s.persistExchange(ctx, in.UserID, in.Message, reply)
	}

	return reply, nil
}

// History devuelve la transcripción reciente en orden cronológico.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = s.cfg.MaxHistoryMessages
	}
	recent, err := s.messages.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ChatMessage, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		out = append(out, recent[i])
	}
	return out, nil
}

// persistExchange guarda el par user/assistant. Best-effort: una falla acá
// jamás afecta la respuesta; queda al menos el log.
func (s *Service) persistExchange(ctx context.Context, userID, userMessage, reply string) {
	now := s.now()
	err := s.messages.Append(ctx, []ChatMessage{
		{
			ID:        uuid.NewString(),
			UserID:    userID,
			Role:      RoleUser,
			Content:   userMessage,
			CreatedAt: now,
		},
		{
			ID:      uuid.NewString(),
			UserID:  userID,
			Role:    RoleAssistant,
			Content: reply,
			// El milisegundo extra conserva el orden user->assistant
			// al ordenar por created_at.
			CreatedAt: now.Add(time.Millisecond),
		},
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("chat: failed to persist exchange")
	}
}
