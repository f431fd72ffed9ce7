package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type RequirementsSaver interface {
	SaveTrainingRequirements(ctx context.Context, reqs []storage.RequirementAssignment) error
}

func SaveRequirementsAdmin(log *slog.Logger, saver RequirementsSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.requirements.save.SaveRequirementsAdmin"

		var reqs []storage.RequirementAssignment
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if len(reqs) == 0 {
			log.Warn("Пустой список норм", slog.String("op", op))
			http.Error(w, "No requirements provided", http.StatusBadRequest)
			return
		}

		for i, a := range reqs {
			if a.ItemID == 0 || a.PlanID == 0 {
				http.Error(w, fmt.Sprintf("Requirement %d: item_id and plan_id are required", i), http.StatusBadRequest)
				return
			}
			if !storage.IsValidItemKind(a.ItemKind) {
				http.Error(w, fmt.Sprintf("Requirement %d: unknown item_kind %q", i, a.ItemKind), http.StatusBadRequest)
				return
			}
			if a.Hours < 0 {
				http.Error(w, fmt.Sprintf("Requirement %d: hours must not be negative", i), http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveTrainingRequirements(ctx, reqs); err != nil {
			if errors.Is(err, storage.ErrForeignKey) {
				http.Error(w, "Unknown plan or resource", http.StatusBadRequest)
				return
			}
			log.Error("Ошибка сохранения норм", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Requirements saved", slog.String("op", op), slog.Int("saved_count", len(reqs)))

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"saved":  len(reqs),
		})
	}
}
