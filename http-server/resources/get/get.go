package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type Resources interface {
	GetAllResources(ctx context.Context) ([]storage.Resource, error)
}

func GetResources(log *slog.Logger, resources Resources) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resources.get.GetResources"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := resources.GetAllResources(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Ошибка при получении ресурсов")
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		log.Debug("resources loaded", slog.String("op", op), slog.Int("count", len(list)))

		render.JSON(w, r, list)
	}
}
