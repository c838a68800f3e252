package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/exera-hr/jobdesk/backend/internal/ai"
	"github.com/exera-hr/jobdesk/backend/internal/config"
	"github.com/exera-hr/jobdesk/backend/internal/domain"
	"github.com/exera-hr/jobdesk/backend/internal/platform"
	"github.com/exera-hr/jobdesk/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	aiClient      *ai.Client
	publisher     *platform.Publisher

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client, aiClient *ai.Client, publisher *platform.Publisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		aiClient:      aiClient,
		publisher:     publisher,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.With(h.auth).Get("/me", h.GetCurrentUser)
			r.With(h.auth, h.requirePermission(domain.CapManageUsers)).Post("/register", h.CreateUser)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.auth)
			r.Use(h.requirePermission(domain.CapManageUsers))
			r.Get("/", h.GetAllUsers)
			r.Post("/", h.CreateUser)
			r.Delete("/{id}", h.DeleteUser)
		})

		r.Route("/job-descriptions", func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/", h.GetAllJobs)
			r.With(h.requirePermission(domain.CapCreateJobs)).Post("/", h.CreateJob)
			r.With(h.requirePermission(domain.CapViewMetrics)).Get("/metrics", h.GetJobMetrics)
			r.With(h.requirePermission(domain.CapViewMetrics)).Get("/trends", h.GetJobTrends)
			r.Post("/search", h.SearchJobs)
			r.Post("/in-process", h.SearchJobsInProcess)
			r.Post("/analyze-bias", h.AnalyzeBias)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.jobCtx)
				r.Get("/", h.GetJob)
				r.With(h.requirePermission(domain.CapCreateJobs)).Put("/", h.UpdateJob)
				r.With(h.requirePermission(domain.CapApproveJobs)).Put("/approve", h.ApproveJob)
				r.Patch("/status", h.UpdateJobStatus)
				r.Patch("/status-approved", h.UpdateJobStatus)
				r.With(h.requirePermission(domain.CapFormatJobs)).Put("/format", h.FormatJob)
				r.With(h.requirePermission(domain.CapPublishJobs)).Post("/publish", h.PublishJob)
			})
		})

		r.With(h.auth).Post("/ai/auto-complete", h.AutoComplete)

		// Legacy paths still used by older clients. They must resolve to
		// the same handlers and validation rules as the routes above.
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/search-jobs-in-process", h.SearchJobsInProcess)
			r.Post("/search-job-update", h.SearchJobs)
			r.Post("/auto-complete-job", h.AutoComplete)
			r.Post("/job-autocomplete", h.AutoComplete)
			r.Post("/analyze-bias", h.AnalyzeBias)
			r.With(h.jobCtx).Put("/job-approve/{id}", h.UpdateJobStatus)
		})
	})
}
