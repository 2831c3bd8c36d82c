package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"PromoPilot/internal/lib/api/response"
	"PromoPilot/internal/lib/sl"
)

// Gateway drives one decoded chat update through the bot.
type Gateway interface {
	ProcessUpdate(ctx context.Context, upd *tgbotapi.Update) error
}

// Telegram handles webhook POSTs in long-running mode: one update per
// request, mirroring the serverless entry adapter.
func Telegram(log *slog.Logger, gateway Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.webhook"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var upd tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			logger.Error("failed to decode update", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := gateway.ProcessUpdate(r.Context(), &upd); err != nil {
			logger.Error("processing update", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Update processing failed"))
			return
		}

		render.JSON(w, r, response.Ok(nil))
	}
}
