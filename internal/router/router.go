package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "petvault/internal/adapters/storage/memory"
	pg "petvault/internal/adapters/storage/postgres"
	"petvault/internal/domain/assistant"
	"petvault/internal/domain/pets"
	"petvault/internal/domain/profiles"
	"petvault/internal/domain/reminders"
	"petvault/internal/domain/timeline"
	"petvault/internal/domain/vault"
	"petvault/internal/middleware"
	"petvault/internal/ports/auth"
	"petvault/internal/ports/completion"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petvault/docs"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Proveedor de completions. Nil deja el chat en modo degradado (503 lógico).
	Provider completion.Provider

	// Límites del asistente. Los ceros toman default.
	Assistant assistant.Config
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		petRepo      pets.Repository
		timelineRepo timeline.Repository
		reminderRepo reminders.Repository
		vaultRepo    vault.Repository
		profileRepo  profiles.Repository
		chatRepo     assistant.MessageRepository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		timelineRepo = pg.NewTimelineRepo(db)
		reminderRepo = pg.NewRemindersRepo(db)
		vaultRepo = pg.NewVaultRepo(db)
		profileRepo = pg.NewProfilesRepo(db)
		chatRepo = pg.NewChatRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		timelineRepo = mem.NewTimelineRepo()
		reminderRepo = mem.NewRemindersRepo()
		vaultRepo = mem.NewVaultRepo()
		profileRepo = mem.NewProfilesRepo()
		chatRepo = mem.NewChatRepo()
	}

	// Services por módulo
	profilesSvc := profiles.NewService(profileRepo)
	petsSvc := pets.NewService(petRepo)
	timelineSvc := timeline.NewService(timelineRepo)
	remindersSvc := reminders.NewService(reminderRepo)
	vaultSvc := vault.NewService(vaultRepo)

	assistantSvc := assistant.NewService(
		chatRepo,
		opts.Provider,
		profilesSvc,
		petsSvc,
		timelineSvc,
		remindersSvc,
		vaultSvc,
		opts.Assistant,
	)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		profiles.RegisterRoutes(api, profilesSvc)
		pets.RegisterRoutes(api, petsSvc, profilesSvc)
		timeline.RegisterRoutes(api, timelineSvc, petsSvc)
		reminders.RegisterRoutes(api, remindersSvc, petsSvc)
		vault.RegisterRoutes(api, vaultSvc, petsSvc, timelineSvc, profilesSvc)
		assistant.RegisterRoutes(api, assistantSvc)
	})

	return r
}
