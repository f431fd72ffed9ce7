package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type QuoteCreator interface {
	CreateQuote(ctx context.Context, q storage.NewQuote) (uuid.UUID, error)
}

type Response struct {
	Status string    `json:"status"`
	ID     uuid.UUID `json:"id"`
}

func SaveQuote(log *slog.Logger, creator QuoteCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quotes.save.SaveQuote"

		var req storage.NewQuote
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateQuote(ctx, req)
		if err != nil {
			log.Error("Ошибка создания КП", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("quote created", slog.String("op", op), slog.String("quote_id", id.String()))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Status: "success", ID: id})
	}
}
