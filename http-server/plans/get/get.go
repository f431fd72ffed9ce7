package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type PlansProvider interface {
	GetPlans(ctx context.Context) ([]storage.Plan, error)
}

func GetPlans(log *slog.Logger, provider PlansProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.get.GetPlans"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		plans, err := provider.GetPlans(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Ошибка при получении планов")
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, plans)
	}
}
