package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type ResourceCreator interface {
	CreateResource(ctx context.Context, r storage.Resource) (int64, error)
}

func SaveResourceAdmin(log *slog.Logger, creator ResourceCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resources.save.SaveResourceAdmin"

		var res storage.Resource
		if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		res.Name = strings.TrimSpace(res.Name)
		if res.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateResource(ctx, res)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				http.Error(w, "Ресурс с таким именем уже существует", http.StatusConflict)
				return
			}
			log.Error("Ошибка создания ресурса", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		log.Info("resource created", slog.String("op", op), slog.Int64("id", id))

		res.ID = id
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, res)
	}
}
