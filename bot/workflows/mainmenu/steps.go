package mainmenu

import (
	"context"
	"strings"

	"PromoPilot/bot/chat"
)

// menuButtons defines the top-level menu layout.
var menuButtons = [][]chat.MenuButton{
	{{Text: BtnGenerateContent}},
	{{Text: BtnPushGenerator}},
}

// ChooseModeStep — offer the two flows and route on the exact label.
type ChooseModeStep struct{}

func (s *ChooseModeStep) ID() chat.StepID { return StepChooseMode }

func (s *ChooseModeStep) Enter(ctx context.Context, m chat.Messenger, state *chat.ChatState) chat.StepResult {
	if err := m.SendMenu(state.ChatID, "Welcome! Choose an option:", menuButtons); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{}
}

func (s *ChooseModeStep) HandleInput(ctx context.Context, m chat.Messenger, state *chat.ChatState, input chat.UserInput) chat.StepResult {
	switch strings.TrimSpace(input.Text) {
	case BtnGenerateContent:
		return chat.StepResult{
			Complete:    true,
			UpdateState: map[string]string{chat.KeyNextWorkflow: "content"},
		}
	case BtnPushGenerator:
		return chat.StepResult{
			Complete:    true,
			UpdateState: map[string]string{chat.KeyNextWorkflow: "push"},
		}
	}

	// Anything else while idle is a no-op.
	return chat.StepResult{}
}
