package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type CatalogProvider interface {
	GetMachines(ctx context.Context) ([]storage.CatalogItem, error)
	GetSoftware(ctx context.Context) ([]storage.CatalogItem, error)
}

func GetMachines(log *slog.Logger, catalog CatalogProvider) http.HandlerFunc {
	return listHandler(log, "handlers.catalog.get.GetMachines", catalog.GetMachines)
}

func GetSoftware(log *slog.Logger, catalog CatalogProvider) http.HandlerFunc {
	return listHandler(log, "handlers.catalog.get.GetSoftware", catalog.GetSoftware)
}

func listHandler(log *slog.Logger, op string, fetch func(context.Context) ([]storage.CatalogItem, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := fetch(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Ошибка при получении каталога")
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, items)
	}
}
