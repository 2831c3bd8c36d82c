package content

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"

	"PromoPilot/bot/chat"
	"PromoPilot/entity"

	"PromoPilot/internal/lib/sl"
)

const (
	noMatchText = "Sorry, no content found matching your criteria. Try different options."

	lookupFailedText = "An error occurred while getting content.\n" +
		"Please try again with /start"
)

// FacetStep prompts with the current choices for one facet and stores
// whatever the user answers, verbatim, without validating it against the
// offered options.
type FacetStep struct {
	id       chat.StepID
	prompt   string
	field    string
	key      string
	nextStep chat.StepID
	catalog  Catalog
}

func (s *FacetStep) ID() chat.StepID { return s.id }

func (s *FacetStep) Enter(ctx context.Context, m chat.Messenger, state *chat.ChatState) chat.StepResult {
	values := s.catalog.UniqueValues(ctx, s.field)
	if err := m.SendMenu(state.ChatID, s.prompt, chat.RowsFromOptions(values)); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *FacetStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.ChatState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{
		NextStep:    s.nextStep,
		UpdateState: map[string]string{s.key: strings.TrimSpace(input.Text)},
	}
}

// FormatStep is the terminal step of the content flow: it collects the last
// facet, looks up the catalog and replies with one matching record. The
// workflow always completes here, so the state is cleared even on failure.
type FormatStep struct {
	catalog Catalog
	assets  AssetResolver
	log     *slog.Logger
}

func (s *FormatStep) ID() chat.StepID { return StepFormat }

func (s *FormatStep) Enter(ctx context.Context, m chat.Messenger, state *chat.ChatState) chat.StepResult {
	values := s.catalog.UniqueValues(ctx, entity.FieldFormat)
	if err := m.SendMenu(state.ChatID, "Finally, choose the format:", chat.RowsFromOptions(values)); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *FormatStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.ChatState, input chat.UserInput) chat.StepResult {
	state.Set(KeyFormat, strings.TrimSpace(input.Text))

	records, err := s.catalog.AllRecords(ctx)
	if err != nil {
		s.log.With(
			slog.String("user_id", state.UserID),
		).Error("content: fetching catalog", sl.Err(err))
		_ = m.SendText(state.ChatID, lookupFailedText)
		return chat.StepResult{Complete: true}
	}

	var matches []entity.ContentRecord
	for _, record := range records {
		if record.Matches(
			state.GetString(KeyAudience),
			state.GetString(KeyLanguage),
			state.GetString(KeyCountry),
			state.GetString(KeyTopic),
			state.GetString(KeyFormat),
		) {
			matches = append(matches, record)
		}
	}

	if len(matches) == 0 {
		_ = m.SendText(state.ChatID, noMatchText)
		return chat.StepResult{Complete: true}
	}

	picked := matches[rand.Intn(len(matches))]
	reply := "Here's your content:\n\n" + picked.Text

	if picked.ImageID != "" {
		link, err := s.assets.ShareableLink(ctx, picked.ImageID)
		if err != nil {
			// Non-fatal: deliver the text without the image link.
			s.log.With(
				slog.String("image_id", picked.ImageID),
			).Error("content: resolving image", sl.Err(err))
		} else {
			reply += "\n\nImage: " + link
		}
	}

	_ = chat.SendChunked(m, state.ChatID, reply)
	return chat.StepResult{Complete: true}
}
