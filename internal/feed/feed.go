package feed

import (
	"context"
	"log/slog"

	"PromoPilot/entity"
	"PromoPilot/internal/lib/sl"
	"PromoPilot/internal/ws"
)

// MessageRepo persists dialog feed entries.
type MessageRepo interface {
	SaveChatMessage(ctx context.Context, msg entity.ChatMessage) error
}

// Recorder receives every incoming dialog message, stores it when a
// repository is configured and broadcasts it to the ops feed.
type Recorder struct {
	repo MessageRepo
	hub  *ws.Hub
	log  *slog.Logger
}

// NewRecorder creates a feed recorder. repo may be nil.
func NewRecorder(repo MessageRepo, hub *ws.Hub, log *slog.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		hub:  hub,
		log:  log.With(sl.Module("feed")),
	}
}

// Record stores and broadcasts one message. Failures are logged and never
// interrupt dispatch.
func (r *Recorder) Record(msg entity.ChatMessage) {
	if r.repo != nil {
		if err := r.repo.SaveChatMessage(context.Background(), msg); err != nil {
			r.log.Error("saving chat message", sl.Err(err))
		}
	}
	if r.hub != nil {
		r.hub.BroadcastMessage(msg)
	}
}
