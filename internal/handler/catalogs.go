package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/utils"
)

// checkOptions runs the checks struct tags cannot express.
func checkOptions(options *domain.ScheduleOptions) error {
	if err := utils.ValidateDisplayPeriods(options); err != nil {
		return err
	}
	return utils.ValidateCatalogSlots(options)
}

func (h *Handler) CreateCatalog(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Name        string         `json:"name" validate:"required"`
		Description string         `json:"description"`
		Periods     []int          `json:"periods" validate:"required,dive,min=0,max=255"`
		Classes     []domain.Class `json:"classes" validate:"required,dive"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c := &domain.Catalog{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   myInfo.ID,
		Options: domain.ScheduleOptions{
			Periods: req.Periods,
			Classes: req.Classes,
		},
	}

	if err := checkOptions(&c.Options); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateCatalog(c); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "catalogs_name_key":
				h.errorResponse(w, r, "a catalog with this name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "catalog created", c)
}

func (h *Handler) GetAllCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.repository.GetAllCatalogs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "catalogs loaded", catalogs)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CatalogCtx).(*domain.Catalog)

	h.successResponse(w, r, "catalog loaded", c)
}

func (h *Handler) UpdateCatalog(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CatalogCtx).(*domain.Catalog)

	var req struct {
		Name        *string        `json:"name" validate:"omitempty,min=1"`
		Description *string        `json:"description"`
		Periods     []int          `json:"periods" validate:"omitempty,dive,min=0,max=255"`
		Classes     []domain.Class `json:"classes" validate:"omitempty,dive"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Periods != nil {
		c.Options.Periods = req.Periods
	}
	if req.Classes != nil {
		c.Options.Classes = req.Classes
	}

	if err := checkOptions(&c.Options); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateCatalog(c); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "catalogs_name_key":
				h.errorResponse(w, r, "a catalog with this name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "catalog was changed concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "catalog updated", c)
}

func (h *Handler) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CatalogCtx).(*domain.Catalog)

	if err := h.repository.DeleteCatalog(c.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "catalog deleted", nil)
}
