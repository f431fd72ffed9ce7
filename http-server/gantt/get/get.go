package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/service/schedule"
)

type GanttCalculator interface {
	Compute(ctx context.Context, quoteID uuid.UUID, override schedule.Override) (*schedule.Result, error)
	Latest(quoteID uuid.UUID) (*schedule.Result, bool)
}

// ResourceView добавляет к строке ресурса состояние UI (развёрнута/свёрнута).
// В расчёт это состояние не попадает.
type ResourceView struct {
	schedule.GanttResource
	Expanded bool `json:"expanded"`
}

type PlanView struct {
	PlanID     int64          `json:"plan_id"`
	PlanName   string         `json:"plan_name"`
	TotalDays  int            `json:"total_days"`
	TotalHours float64        `json:"total_hours"`
	Resources  []ResourceView `json:"resources"`
}

type Response struct {
	QuoteID        uuid.UUID          `json:"quote_id"`
	WorkOnSaturday bool               `json:"work_on_saturday"`
	WorkOnSunday   bool               `json:"work_on_sunday"`
	PlanOrder      []int64            `json:"plan_order"`
	Plans          map[int64]PlanView `json:"plans"`
	PlanTotalHours map[int64]float64  `json:"plan_total_hours"`
}

func GetGantt(log *slog.Logger, calc GanttCalculator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gantt.GetGantt"

		quoteID, err := uuid.Parse(chi.URLParam(r, "quoteID"))
		if err != nil {
			http.Error(w, "invalid quote id", http.StatusBadRequest)
			return
		}

		override, err := parseOverride(r)
		if err != nil {
			http.Error(w, "invalid weekend flag", http.StatusBadRequest)
			return
		}

		expanded, err := parseExpanded(r.URL.Query().Get("expanded"))
		if err != nil {
			http.Error(w, "invalid expanded list", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res, err := calc.Compute(ctx, quoteID, override)
		if err != nil {
			switch {
			case schedule.IsNotFound(err):
				log.With(slog.String("op", op), slog.String("quote_id", quoteID.String())).Warn("Quote not found")
				http.Error(w, "Quote not found", http.StatusNotFound)
			case errors.Is(err, schedule.ErrSuperseded):
				log.With(slog.String("op", op), slog.String("quote_id", quoteID.String())).Debug("Gantt recomputation superseded")
				http.Error(w, "superseded by a newer request", http.StatusConflict)
			default:
				log.Error("Failed to compute gantt", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, newResponse(res, expanded))
	}
}

// GetLatestGantt отдаёт последний завершённый расчёт без похода в базу.
func GetLatestGantt(log *slog.Logger, calc GanttCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gantt.GetLatestGantt"

		quoteID, err := uuid.Parse(chi.URLParam(r, "quoteID"))
		if err != nil {
			http.Error(w, "invalid quote id", http.StatusBadRequest)
			return
		}

		expanded, err := parseExpanded(r.URL.Query().Get("expanded"))
		if err != nil {
			http.Error(w, "invalid expanded list", http.StatusBadRequest)
			return
		}

		res, ok := calc.Latest(quoteID)
		if !ok {
			log.With(slog.String("op", op), slog.String("quote_id", quoteID.String())).Debug("No computed gantt yet")
			http.Error(w, "Gantt not computed yet", http.StatusNotFound)
			return
		}

		render.JSON(w, r, newResponse(res, expanded))
	}
}

func newResponse(res *schedule.Result, expanded map[int64]bool) Response {
	resp := Response{
		QuoteID:        res.QuoteID,
		WorkOnSaturday: res.Policy.WorkSaturday,
		WorkOnSunday:   res.Policy.WorkSunday,
		PlanOrder:      res.PlanOrder,
		Plans:          make(map[int64]PlanView, len(res.Plans)),
		PlanTotalHours: res.PlanTotalHours,
	}

	for id, plan := range res.Plans {
		view := PlanView{
			PlanID:     plan.PlanID,
			PlanName:   plan.PlanName,
			TotalDays:  plan.TotalDays,
			TotalHours: res.PlanTotalHours[id],
			Resources:  make([]ResourceView, 0, len(plan.Resources)),
		}
		for _, gr := range plan.Resources {
			view.Resources = append(view.Resources, ResourceView{GanttResource: gr, Expanded: expanded[gr.ResourceID]})
		}
		resp.Plans[id] = view
	}

	return resp
}

func parseOverride(r *http.Request) (schedule.Override, error) {
	var override schedule.Override

	q := r.URL.Query()
	if v := q.Get("work_saturday"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return override, err
		}
		override.WorkSaturday = &b
	}
	if v := q.Get("work_sunday"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return override, err
		}
		override.WorkSunday = &b
	}

	return override, nil
}

func parseExpanded(raw string) (map[int64]bool, error) {
	expanded := make(map[int64]bool)
	if raw == "" {
		return expanded, nil
	}

	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		expanded[id] = true
	}

	return expanded, nil
}
