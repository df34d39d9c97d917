package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/render"
	"github.com/marcusball/class-scheduler/internal/scheduler"
	"github.com/marcusball/class-scheduler/internal/utils"
)

// mailedTables caps how many schedules are rendered into a notification mail.
const mailedTables = 10

type generation struct {
	Schedules []*domain.Schedule `json:"schedules"`
	Count     int                `json:"count"`
	Truncated bool               `json:"truncated"`
}

func (h *Handler) maxResults(requested int) int {
	limit := h.config.Scheduler.MaxResults
	if requested > 0 && (limit == 0 || requested < limit) {
		return requested
	}
	return limit
}

// generate runs the search for options, going through the cache when one is configured.
func (h *Handler) generate(ctx context.Context, options *domain.ScheduleOptions, maxResults int) (*generation, error) {
	key, err := h.cacheKey(options, maxResults)
	if err != nil {
		return nil, err
	}

	if g := h.cachedGeneration(ctx, key); g != nil {
		return g, nil
	}

	s, err := scheduler.New(&scheduler.Parameters{
		MaxResults: maxResults,
		Workers:    h.config.Scheduler.Workers,
	}, options)
	if err != nil {
		return nil, err
	}

	if h.config.Server.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(h.config.Server.GenerateTimeout)*time.Second)
		defer cancel()
	}

	collector := &scheduler.Collector{}
	res, err := s.Schedule(ctx, collector)
	if err != nil {
		return nil, err
	}

	g := &generation{
		Schedules: collector.Schedules(),
		Count:     res.Count,
		Truncated: res.Truncated,
	}
	if g.Schedules == nil {
		g.Schedules = make([]*domain.Schedule, 0)
	}

	h.cacheGeneration(ctx, key, g)

	return g, nil
}

func (h *Handler) generationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.errorResponse(w, r, "the search took too long, narrow the catalog or set maxResults")
	case errors.Is(err, domain.ErrUnknownDay):
		h.badRequest(w, r, err)
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) GenerateSchedules(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Periods    []int          `json:"periods" validate:"dive,min=0,max=255"`
		Classes    []domain.Class `json:"classes" validate:"required,dive"`
		MaxResults int            `json:"maxResults" validate:"min=0"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	options := &domain.ScheduleOptions{
		Periods: req.Periods,
		Classes: req.Classes,
	}

	if err := checkOptions(options); err != nil {
		h.badRequest(w, r, err)
		return
	}

	g, err := h.generate(r.Context(), options, h.maxResults(req.MaxResults))
	if err != nil {
		h.generationError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("found %d schedules", g.Count), g)
}

func (h *Handler) GenerateCatalogSchedules(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CatalogCtx).(*domain.Catalog)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		MaxResults int `json:"maxResults" validate:"min=0"`
	}

	// the body is optional here
	if err := h.readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	g, err := h.generate(r.Context(), &c.Options, h.maxResults(req.MaxResults))
	if err != nil {
		h.generationError(w, r, err)
		return
	}

	// check the invariant once more before anything is stored
	for i, schedule := range g.Schedules {
		if err := utils.ValidateSchedule(schedule, &c.Options); err != nil {
			h.internalServerError(w, r, fmt.Errorf("schedule %d: %w", i+1, err))
			return
		}
	}

	run := &domain.ScheduleRun{
		CatalogID: c.ID,
		Schedules: g.Schedules,
		Truncated: g.Truncated,
	}

	if err := h.repository.InsertScheduleRun(run); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "catalog was deleted during generation")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	tables, err := render.Tables(g.Schedules[:min(len(g.Schedules), mailedTables)], &c.Options)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeSchedulesGenerated,
		To:   myInfo.Email,
		Data: domain.SchedulesGeneratedMailData{
			FullName:    myInfo.FullName,
			CatalogName: c.Name,
			Count:       g.Count,
			Truncated:   g.Truncated,
			Tables:      tables,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("found %d schedules", g.Count), run)
}

func (h *Handler) GetCatalogSchedules(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CatalogCtx).(*domain.Catalog)

	run, err := h.repository.GetScheduleRunByCatalogID(c.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "no schedules have been generated for this catalog", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedules loaded", run)
}

func (h *Handler) ExportCatalogSchedules(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CatalogCtx).(*domain.Catalog)

	run, err := h.repository.GetScheduleRunByCatalogID(c.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no schedules have been generated for this catalog")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	wb := render.NewWorkbook()
	defer wb.Close()

	for _, schedule := range run.Schedules {
		if err := wb.Consume(r.Context(), schedule, &c.Options); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	fileName := fmt.Sprintf("schedules_%d_%s.xlsx", c.ID, run.CreatedAt.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	if _, err := wb.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
