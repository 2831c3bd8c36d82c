package push

import (
	"context"
	"log/slog"
	"strings"

	"PromoPilot/bot/chat"
	"PromoPilot/entity"
	"PromoPilot/internal/lib/sl"
)

const (
	generatingText = "🔄 Generating push notifications... Please wait."

	generateFailedText = "😕 Sorry, couldn't generate push notifications.\n" +
		"Please try again with /start"

	generateMoreText = "Want to generate more push notifications? Type /start"
)

// AskStep asks one free-text question and stores the raw answer.
type AskStep struct {
	id       chat.StepID
	prompt   string
	key      string
	nextStep chat.StepID
}

func (s *AskStep) ID() chat.StepID { return s.id }

func (s *AskStep) Enter(ctx context.Context, m chat.Messenger, state *chat.ChatState) chat.StepResult {
	if err := m.SendText(state.ChatID, s.prompt); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *AskStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.ChatState, input chat.UserInput) chat.StepResult {
	return chat.StepResult{
		NextStep:    s.nextStep,
		UpdateState: map[string]string{s.key: strings.TrimSpace(input.Text)},
	}
}

// GenerateStep is the terminal step of the push flow: it collects the
// message, calls the generator and replies with the copy. The workflow
// always completes here, so the collected answers are discarded either way.
type GenerateStep struct {
	generator Generator
	log       *slog.Logger
}

func (s *GenerateStep) ID() chat.StepID { return StepMessage }

func (s *GenerateStep) Enter(ctx context.Context, m chat.Messenger, state *chat.ChatState) chat.StepResult {
	if err := m.SendText(state.ChatID, "What message do you want to convey?"); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *GenerateStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.ChatState, input chat.UserInput) chat.StepResult {
	state.Set(KeyMessage, strings.TrimSpace(input.Text))

	_ = m.SendText(state.ChatID, generatingText)
	_ = m.SendTyping(state.ChatID)

	requester := state.Username
	if requester == "" {
		requester = "anonymous"
	}

	req := entity.PushRequest{
		Product:   state.GetString(KeyProduct),
		Country:   state.GetString(KeyCountry),
		Language:  state.GetString(KeyLanguage),
		AppLink:   state.GetString(KeyAppLink),
		Message:   state.GetString(KeyMessage),
		Requester: requester,
	}

	copyText, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.log.With(
			slog.String("user_id", state.UserID),
		).Error("push: generating notifications", sl.Err(err))
		_ = m.SendText(state.ChatID, generateFailedText)
		return chat.StepResult{Complete: true}
	}

	_ = chat.SendChunked(m, state.ChatID, copyText)
	_ = m.SendText(state.ChatID, generateMoreText)
	return chat.StepResult{Complete: true}
}
