package adapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/aws/aws-lambda-go/events"

	"PromoPilot/internal/lib/sl"
)

// Gateway drives one decoded chat update through the bot.
type Gateway interface {
	ProcessUpdate(ctx context.Context, upd *tgbotapi.Update) error
}

// Adapter is the serverless entry point: one inbound envelope per
// invocation, one update dispatched, one response envelope returned.
type Adapter struct {
	gateway Gateway
	log     *slog.Logger
}

// New creates the entry adapter around the bot gateway.
func New(gateway Gateway, log *slog.Logger) *Adapter {
	return &Adapter{
		gateway: gateway,
		log:     log.With(sl.Module("adapter")),
	}
}

// Handle processes one API-Gateway-style invocation. Envelope errors map to
// 400, dispatch failures to 500, and every handled outcome is a non-error
// return so the platform does not retry the update.
func (a *Adapter) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if strings.TrimSpace(req.Body) == "" {
		return respond(http.StatusBadRequest, errorBody{Error: "no body found in request"}), nil
	}

	var upd tgbotapi.Update
	if err := json.Unmarshal([]byte(req.Body), &upd); err != nil {
		a.log.Error("decoding update", sl.Err(err))
		return respond(http.StatusInternalServerError, errorBody{Error: err.Error()}), nil
	}

	if err := a.gateway.ProcessUpdate(ctx, &upd); err != nil {
		a.log.Error("processing update", sl.Err(err))
		return respond(http.StatusInternalServerError, errorBody{Error: err.Error()}), nil
	}

	return respond(http.StatusOK, statusBody{Status: "ok"}), nil
}

type statusBody struct {
	Status string `json:"status"`
}

type errorBody struct {
	Error string `json:"error"`
}

func respond(code int, body interface{}) events.APIGatewayProxyResponse {
	raw, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Body:       string(raw),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}
