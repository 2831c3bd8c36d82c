package mainmenu

import (
	"PromoPilot/bot/chat"
)

const (
	WorkflowID chat.WorkflowID = "mainmenu"
)

const (
	StepChooseMode chat.StepID = "choose_mode"
)

// Menu button texts. These exact labels select the flow, so they must match
// what the keyboard offers.
const (
	BtnGenerateContent = "Generate Content"
	BtnPushGenerator   = "Use push-generator"
)

// Workflow shows the two top-level choices and chains the user into the
// selected flow.
type Workflow struct {
	steps map[chat.StepID]chat.Step
}

func NewWorkflow() *Workflow {
	w := &Workflow{
		steps: make(map[chat.StepID]chat.Step),
	}
	w.steps[StepChooseMode] = &ChooseModeStep{}
	return w
}

func (w *Workflow) ID() chat.WorkflowID      { return WorkflowID }
func (w *Workflow) InitialStep() chat.StepID { return StepChooseMode }

func (w *Workflow) GetStep(id chat.StepID) (chat.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}
