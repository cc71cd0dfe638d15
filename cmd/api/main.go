package main

import (
	"database/sql"
	"net/http"
	"time"

	"petvault/internal/adapters/auth/supabase"
	"petvault/internal/adapters/completion/groq"
	pg "petvault/internal/adapters/storage/postgres"
	"petvault/internal/domain/assistant"
	"petvault/internal/platform/config"
	"petvault/internal/platform/logger"
	"petvault/internal/ports/auth"
	"petvault/internal/ports/completion"
	"petvault/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.Setup()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.WithError(err).Fatal("cannot open database")
		}
		db = opened
		log.Info("storage: postgres")
	} else {
		log.Info("storage: in-memory")
	}

	var verifier auth.AuthVerifier
	if cfg.SupabaseURL != "" || cfg.SupabaseJWTSecret != "" {
		client, err := supabase.NewClient(supabase.Config{
			BaseURL: cfg.SupabaseURL,
			AnonKey: cfg.SupabaseAnonKey,
		})
		if err != nil && cfg.SupabaseJWTSecret == "" {
			log.WithError(err).Fatal("cannot build auth client")
		}
		verifier = supabase.NewVerifier(client, cfg.SupabaseJWTSecret)
		log.Info("auth: supabase verifier enabled")
	} else {
		log.Warn("auth: no verifier configured, running in dev mode")
	}

	var provider completion.Provider
	if cfg.GroqAPIKey != "" {
		provider = groq.NewClient(groq.Config{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.ChatModel,
		})
		log.WithField("model", cfg.ChatModel).Info("assistant: completion provider enabled")
	} else {
		log.Warn("assistant: GROQ_API_KEY not set, chat will respond unavailable")
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Provider:     provider,
		Assistant: assistant.Config{
			RateLimitPerHour:   cfg.RateLimitPerHour,
			HistoryWindow:      time.Duration(cfg.HistoryWindowMinutes) * time.Minute,
			MaxHistoryMessages: cfg.MaxHistoryMessages,
			CompletionTimeout:  cfg.CompletionTimeout,
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // las completions pueden tardar
	}

	log.WithField("addr", srv.Addr).Info("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server error")
	}
}
