package router

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "appointment-calendar/docs"
	"appointment-calendar/internal/adapters/auth/gotrue"
	"appointment-calendar/internal/adapters/auth/jwtlocal"
	"appointment-calendar/internal/adapters/mail/logmail"
	"appointment-calendar/internal/adapters/mail/smtpmail"
	mem "appointment-calendar/internal/adapters/storage/memory"
	pg "appointment-calendar/internal/adapters/storage/postgres"
	"appointment-calendar/internal/domain/appointments"
	"appointment-calendar/internal/domain/categories"
	"appointment-calendar/internal/domain/patients"
	"appointment-calendar/internal/domain/sharing"
	"appointment-calendar/internal/middleware"
	"appointment-calendar/internal/platform/config"
	"appointment-calendar/internal/platform/logger"
	"appointment-calendar/internal/ports/auth"
	"appointment-calendar/internal/ports/mailer"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	// Overrides para tests; si están en nil se construyen desde Config.
	AuthVerifier auth.AuthVerifier
	DB           *sql.DB
	Mailer       mailer.Mailer
}

// New arma el router completo: middleware, repos (postgres o memoria
// según config), services y rutas de todos los módulos.
func New(opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Noop{}
	}

	verifier, err := buildVerifier(opts)
	if err != nil {
		return nil, err
	}

	db := opts.DB
	if db == nil && cfg.DB.DSN != "" {
		db, err = pg.Open(cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
	}

	var (
		apptRepo     appointments.Repository
		patientRepo  patients.Repository
		categoryRepo categories.Repository
		sharingRepo  sharing.Repository
	)
	if db != nil {
		apptRepo = pg.NewAppointmentsRepo(db)
		patientRepo = pg.NewPatientsRepo(db)
		categoryRepo = pg.NewCategoriesRepo(db)
		sharingRepo = pg.NewSharingRepo(db)
		log.Info("storage: postgres", nil)
	} else {
		apptRepo = mem.NewAppointmentRepo()
		patientRepo = mem.NewPatientRepo()
		categoryRepo = mem.NewCategoryRepo()
		sharingRepo = mem.NewSharingRepo()
		log.Info("storage: in-memory", nil)
	}

	m := opts.Mailer
	if m == nil {
		if cfg.SMTP.Addr != "" {
			m, err = smtpmail.New(smtpmail.Config{
				Addr: cfg.SMTP.Addr,
				From: cfg.SMTP.From,
				User: cfg.SMTP.User,
				Pass: cfg.SMTP.Pass,
			})
			if err != nil {
				return nil, err
			}
		} else {
			m = logmail.New(log)
		}
	}

	apptSvc := appointments.NewService(apptRepo)
	patientSvc := patients.NewService(patientRepo)
	categorySvc := categories.NewService(categoryRepo)
	sharingSvc := sharing.NewService(sharingRepo, apptSvc, sharing.ServiceConfig{
		Mailer:  m,
		Logger:  log,
		BaseURL: cfg.PublicBaseURL,
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID", "X-Debug-User-Email"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	appointments.RegisterRoutes(r, apptSvc, sharingSvc)
	patients.RegisterRoutes(r, patientSvc)
	categories.RegisterRoutes(r, categorySvc)
	sharing.RegisterRoutes(r, sharingSvc)

	return r, nil
}

func buildVerifier(opts Options) (auth.AuthVerifier, error) {
	if opts.AuthVerifier != nil {
		return opts.AuthVerifier, nil
	}

	cfg := opts.Config
	switch cfg.Auth.Mode {
	case "", "none":
		// Modo dev: identidad por headers X-Debug-*.
		return nil, nil
	case "jwt":
		return jwtlocal.NewVerifier(cfg.Auth.JWTSecret)
	case "gotrue":
		return gotrue.NewVerifier(gotrue.Config{
			BaseURL: cfg.Auth.IdPURL,
			APIKey:  cfg.Auth.IdPAPIKey,
		})
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
