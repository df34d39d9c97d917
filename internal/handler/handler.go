package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/marcusball/class-scheduler/internal/config"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// stateless, the catalog travels in the request body
	h.Mux.Post("/schedules/generate", h.GenerateSchedules)

	// only the admin who created a catalog, or the initial admin, may change it
	ownerOnly := []func(http.Handler) http.Handler{
		h.RequiredRole([]domain.Role{domain.RoleAdmin}),
		h.myInfo,
		h.catalogOwner,
	}

	// everything below requires a signed-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Get("/catalogs", h.GetMyCatalogs)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/catalogs", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).With(h.myInfo).Post("/", h.CreateCatalog)
			r.Get("/", h.GetAllCatalogs)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.catalog)
				r.Get("/", h.GetCatalog)
				r.With(ownerOnly...).Patch("/", h.UpdateCatalog)
				r.With(ownerOnly...).Delete("/", h.DeleteCatalog)
				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", h.GetCatalogSchedules)
					r.Get("/export", h.ExportCatalogSchedules)
					r.With(ownerOnly...).Post("/generate", h.GenerateCatalogSchedules)
				})
			})
		})
	})
}
