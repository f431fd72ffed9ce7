package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type QuoteUpdater interface {
	UpdateQuoteWeekends(ctx context.Context, id uuid.UUID, upd storage.UpdateWeekends) error
	SaveQuoteItems(ctx context.Context, id uuid.UUID, items []storage.QuoteItem) error
}

// UpdateWeekends меняет сохранённые в КП флаги работы в субботу/воскресенье.
func UpdateWeekends(log *slog.Logger, update QuoteUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quotes.update.UpdateWeekends"

		id, err := uuid.Parse(chi.URLParam(r, "quoteID"))
		if err != nil {
			http.Error(w, "invalid quote id", http.StatusBadRequest)
			return
		}

		var req storage.UpdateWeekends
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.UpdateQuoteWeekends(ctx, id, req); err != nil {
			writeError(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// UpdateItems полностью заменяет список машин и софта в КП.
func UpdateItems(log *slog.Logger, update QuoteUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quotes.update.UpdateItems"

		id, err := uuid.Parse(chi.URLParam(r, "quoteID"))
		if err != nil {
			http.Error(w, "invalid quote id", http.StatusBadRequest)
			return
		}

		var items []storage.QuoteItem
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		for i, it := range items {
			if it.ItemID == 0 {
				http.Error(w, fmt.Sprintf("Item %d: item_id is required", i), http.StatusBadRequest)
				return
			}
			if !storage.IsValidItemKind(it.ItemKind) {
				http.Error(w, fmt.Sprintf("Item %d: unknown item_kind %q", i, it.ItemKind), http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update.SaveQuoteItems(ctx, id, items); err != nil {
			writeError(w, log, op, err)
			return
		}

		log.Info("quote items saved", slog.String("op", op), slog.String("quote_id", id.String()), slog.Int("count", len(items)))

		w.WriteHeader(http.StatusOK)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Quote not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrDuplicate):
		http.Error(w, "Позиция уже есть в КП", http.StatusConflict)
	default:
		log.Error("Ошибка обновления КП", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
	}
}
