package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type QuoteProvider interface {
	GetQuote(ctx context.Context, id uuid.UUID) (*storage.Quote, error)
}

func GetQuote(log *slog.Logger, provider QuoteProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quotes.get.GetQuote"

		id, err := uuid.Parse(chi.URLParam(r, "quoteID"))
		if err != nil {
			http.Error(w, "invalid quote id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		quote, err := provider.GetQuote(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				log.With(slog.String("op", op), slog.String("quote_id", id.String())).Warn("Quote not found")
				http.Error(w, "Quote not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Ошибка при получении КП")
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, quote)
	}
}
