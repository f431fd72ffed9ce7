package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/service/schedule"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, quoteID uuid.UUID, override schedule.Override) ([]byte, error)
}

func GenerateGanttExcel(log *slog.Logger, gen GenerateExcelHandler, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.gantt.GenerateGanttExcel"

		quoteID, err := uuid.Parse(chi.URLParam(r, "quoteID"))
		if err != nil {
			http.Error(w, "invalid quote id", http.StatusBadRequest)
			return
		}

		var override schedule.Override
		for name, dst := range map[string]**bool{
			"work_saturday": &override.WorkSaturday,
			"work_sunday":   &override.WorkSunday,
		} {
			raw := r.URL.Query().Get(name)
			if raw == "" {
				continue
			}
			b, err := strconv.ParseBool(raw)
			if err != nil {
				http.Error(w, "invalid "+name, http.StatusBadRequest)
				return
			}
			*dst = &b
		}

		// на Excel даём вдвое больше времени, чем на JSON
		ctx, cancel := context.WithTimeout(r.Context(), 2*timeout)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, quoteID, override)
		if err != nil {
			switch {
			case schedule.IsNotFound(err):
				http.Error(w, "Quote not found", http.StatusNotFound)
			case errors.Is(err, schedule.ErrSuperseded):
				http.Error(w, "superseded by a newer request", http.StatusConflict)
			default:
				log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal error", http.StatusInternalServerError)
			}
			return
		}

		fileName := fmt.Sprintf("Gantt_%s_%s.xlsx", quoteID.String()[:8], time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
