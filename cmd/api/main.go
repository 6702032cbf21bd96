package main

import (
	"net/http"
	"os"
	"time"

	"appointment-calendar/internal/platform/config"
	"appointment-calendar/internal/platform/logger"
	"appointment-calendar/internal/router"
)

// @title Appointment Calendar API
// @version 1.0
// @description Appointment scheduling with shared calendars and invitation-based access.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "appointment-calendar",
	})

	h, err := router.New(router.Options{
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		log.Error("startup failed", logger.Err(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "auth_mode": cfg.Auth.Mode})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", logger.Err(err))
		os.Exit(1)
	}
}
