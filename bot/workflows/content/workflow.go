package content

import (
	"context"
	"log/slog"

	"PromoPilot/bot/chat"
	"PromoPilot/entity"
)

const (
	WorkflowID chat.WorkflowID = "content"
)

// Step IDs
const (
	StepAudience chat.StepID = "audience"
	StepLanguage chat.StepID = "language"
	StepCountry  chat.StepID = "country"
	StepTopic    chat.StepID = "topic"
	StepFormat   chat.StepID = "format"
)

// Answer keys
const (
	KeyAudience = "audience"
	KeyLanguage = "language"
	KeyCountry  = "country"
	KeyTopic    = "topic"
	KeyFormat   = "format"
)

// Catalog reads the content catalog. Both operations re-fetch from the
// source on every call.
type Catalog interface {
	AllRecords(ctx context.Context) ([]entity.ContentRecord, error)
	UniqueValues(ctx context.Context, field string) []string
}

// AssetResolver resolves an attached-image reference to a shareable link.
type AssetResolver interface {
	ShareableLink(ctx context.Context, assetID string) (string, error)
}

// Workflow walks the user through the five facet selections and returns a
// matching catalog record.
type Workflow struct {
	steps map[chat.StepID]chat.Step
}

func NewWorkflow(catalog Catalog, assets AssetResolver, log *slog.Logger) *Workflow {
	w := &Workflow{
		steps: make(map[chat.StepID]chat.Step),
	}

	w.steps[StepAudience] = &FacetStep{
		id:       StepAudience,
		prompt:   "Please select your audience:",
		field:    entity.FieldAudience,
		key:      KeyAudience,
		nextStep: StepLanguage,
		catalog:  catalog,
	}
	w.steps[StepLanguage] = &FacetStep{
		id:       StepLanguage,
		prompt:   "Great! Now select the language:",
		field:    entity.FieldLanguage,
		key:      KeyLanguage,
		nextStep: StepCountry,
		catalog:  catalog,
	}
	w.steps[StepCountry] = &FacetStep{
		id:       StepCountry,
		prompt:   "Perfect! Choose the country:",
		field:    entity.FieldCountry,
		key:      KeyCountry,
		nextStep: StepTopic,
		catalog:  catalog,
	}
	w.steps[StepTopic] = &FacetStep{
		id:       StepTopic,
		prompt:   "Choose the topic:",
		field:    entity.FieldTopic,
		key:      KeyTopic,
		nextStep: StepFormat,
		catalog:  catalog,
	}
	w.steps[StepFormat] = &FormatStep{
		catalog: catalog,
		assets:  assets,
		log:     log,
	}

	return w
}

func (w *Workflow) ID() chat.WorkflowID      { return WorkflowID }
func (w *Workflow) InitialStep() chat.StepID { return StepAudience }

func (w *Workflow) GetStep(id chat.StepID) (chat.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}
