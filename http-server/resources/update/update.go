package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type ResourcesUpdater interface {
	UpdateResources(ctx context.Context, resources []storage.Resource) error
}

func UpdateResourcesAdmin(log *slog.Logger, update ResourcesUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resources.update.UpdateResourcesAdmin"

		var resources []storage.Resource
		if err := json.NewDecoder(r.Body).Decode(&resources); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		for _, res := range resources {
			if res.ID == 0 || res.Name == "" {
				http.Error(w, "id and name are required", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := update.UpdateResources(ctx, resources)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Ресурс не найден", http.StatusNotFound)
			case errors.Is(err, storage.ErrDuplicate):
				http.Error(w, "Ресурс с таким именем уже существует", http.StatusConflict)
			default:
				log.Error("Ошибка обновления ресурсов", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
