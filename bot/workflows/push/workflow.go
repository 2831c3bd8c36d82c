package push

import (
	"context"
	"log/slog"

	"PromoPilot/bot/chat"
	"PromoPilot/entity"
)

const (
	WorkflowID chat.WorkflowID = "push"
)

// Step IDs
const (
	StepProduct  chat.StepID = "product"
	StepCountry  chat.StepID = "country"
	StepLanguage chat.StepID = "language"
	StepLink     chat.StepID = "link"
	StepMessage  chat.StepID = "message"
)

// Answer keys
const (
	KeyProduct  = "product"
	KeyCountry  = "country"
	KeyLanguage = "language"
	KeyAppLink  = "app_link"
	KeyMessage  = "message"
)

// Generator produces push-notification copy for a fully collected request.
type Generator interface {
	Generate(ctx context.Context, req entity.PushRequest) (string, error)
}

// Workflow collects the five push-generator inputs and replies with the
// generated copy.
type Workflow struct {
	steps map[chat.StepID]chat.Step
}

func NewWorkflow(generator Generator, log *slog.Logger) *Workflow {
	w := &Workflow{
		steps: make(map[chat.StepID]chat.Step),
	}

	w.steps[StepProduct] = &AskStep{
		id:       StepProduct,
		prompt:   "What's your product name?",
		key:      KeyProduct,
		nextStep: StepCountry,
	}
	w.steps[StepCountry] = &AskStep{
		id:       StepCountry,
		prompt:   "Which country are you targeting?",
		key:      KeyCountry,
		nextStep: StepLanguage,
	}
	w.steps[StepLanguage] = &AskStep{
		id:       StepLanguage,
		prompt:   "What language should the copy be in?",
		key:      KeyLanguage,
		nextStep: StepLink,
	}
	w.steps[StepLink] = &AskStep{
		id:       StepLink,
		prompt:   "Please provide the App Store/Google Play link:",
		key:      KeyAppLink,
		nextStep: StepMessage,
	}
	w.steps[StepMessage] = &GenerateStep{
		generator: generator,
		log:       log,
	}

	return w
}

func (w *Workflow) ID() chat.WorkflowID      { return WorkflowID }
func (w *Workflow) InitialStep() chat.StepID { return StepProduct }

func (w *Workflow) GetStep(id chat.StepID) (chat.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}
