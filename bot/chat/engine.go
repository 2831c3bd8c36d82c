package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// KeyNextWorkflow, when set by a completing step, chains the user into
// another workflow instead of ending the conversation.
const KeyNextWorkflow = "next_workflow"

const restartText = "Please start over with /start\n" +
	"If you need help, use /help command."

const stepFailedText = "An error occurred. Please try again with /start"

// Engine is the conversation dispatcher: it routes each incoming message to
// the current step of the user's active workflow and advances the state.
type Engine struct {
	workflows map[WorkflowID]Workflow
	entry     WorkflowID
	storage   Storage
	log       *slog.Logger
}

// NewEngine creates a new conversation engine.
func NewEngine(storage Storage, log *slog.Logger) *Engine {
	return &Engine{
		workflows: make(map[WorkflowID]Workflow),
		storage:   storage,
		log:       log,
	}
}

// RegisterWorkflow adds a workflow to the engine.
func (e *Engine) RegisterWorkflow(w Workflow) {
	e.workflows[w.ID()] = w
	e.log.Info("chat engine: registered workflow", slog.String("workflow_id", string(w.ID())))
}

// SetEntryWorkflow sets the workflow started by Restart.
func (e *Engine) SetEntryWorkflow(id WorkflowID) {
	e.entry = id
}

// Restart drops any existing state for the user and starts the entry
// workflow. This is the /start command.
func (e *Engine) Restart(ctx context.Context, m Messenger, platform, userID, chatID, username string) error {
	if err := e.storage.Delete(ctx, platform, userID); err != nil {
		return fmt.Errorf("resetting state: %w", err)
	}
	return e.StartWorkflow(ctx, m, platform, userID, chatID, username, e.entry)
}

// HandleMessage processes a plain text message. A user without active state
// is told to restart; no state is created for them.
func (e *Engine) HandleMessage(ctx context.Context, m Messenger, platform, userID, chatID, text string) error {
	state, err := e.storage.Load(ctx, platform, userID)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	if state == nil {
		return m.SendText(chatID, restartText)
	}

	w, ok := e.workflows[state.WorkflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", state.WorkflowID)
	}

	step, ok := w.GetStep(state.CurrentStep)
	if !ok {
		return fmt.Errorf("step not found: %s", state.CurrentStep)
	}

	result := step.HandleInput(ctx, m, state, UserInput{Text: text})
	return e.processResult(ctx, m, state, w, result)
}

// StartWorkflow begins a new workflow for a user.
func (e *Engine) StartWorkflow(ctx context.Context, m Messenger, platform, userID, chatID, username string, workflowID WorkflowID) error {
	w, ok := e.workflows[workflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", workflowID)
	}

	state := NewChatState(platform, userID, chatID, username, workflowID, w.InitialStep())

	if err := e.storage.Save(ctx, state); err != nil {
		return fmt.Errorf("saving initial state: %w", err)
	}

	step, ok := w.GetStep(w.InitialStep())
	if !ok {
		return fmt.Errorf("initial step not found: %s", w.InitialStep())
	}

	e.log.Info("chat engine: starting workflow",
		slog.String("platform", platform),
		slog.String("user_id", userID),
		slog.String("workflow_id", string(workflowID)),
	)

	result := step.Enter(ctx, m, state)
	return e.processResult(ctx, m, state, w, result)
}

// processResult applies a step outcome: merge answers, transition, chain or
// finish. A step error on a non-terminal step is reported to the user and
// the state is left in place so the user can retry where they were;
// terminal steps clear state themselves by returning Complete.
func (e *Engine) processResult(ctx context.Context, m Messenger, state *ChatState, w Workflow, result StepResult) error {
	if result.Error != nil {
		e.log.Error("chat engine: step error",
			slog.String("platform", state.Platform),
			slog.String("user_id", state.UserID),
			slog.String("step_id", string(state.CurrentStep)),
			slog.String("error", result.Error.Error()),
		)
		_ = m.SendText(state.ChatID, stepFailedText)
		return nil
	}

	if result.UpdateState != nil {
		state.MergeData(result.UpdateState)
	}
	state.UpdatedAt = time.Now()

	if result.Complete {
		return e.complete(ctx, m, state)
	}

	// Transition to next step if specified, looping through auto-transitions.
	const maxTransitions = 20
	for i := 0; result.NextStep != "" && result.NextStep != state.CurrentStep && i < maxTransitions; i++ {
		state.CurrentStep = result.NextStep

		if err := e.storage.Save(ctx, state); err != nil {
			return fmt.Errorf("saving state after transition: %w", err)
		}

		step, ok := w.GetStep(result.NextStep)
		if !ok {
			return fmt.Errorf("next step not found: %s", result.NextStep)
		}

		e.log.Debug("chat engine: transitioning",
			slog.String("platform", state.Platform),
			slog.String("user_id", state.UserID),
			slog.String("step_id", string(result.NextStep)),
		)

		result = step.Enter(ctx, m, state)
		if result.Error != nil {
			e.log.Error("chat engine: step error",
				slog.String("platform", state.Platform),
				slog.String("user_id", state.UserID),
				slog.String("step_id", string(state.CurrentStep)),
				slog.String("error", result.Error.Error()),
			)
			_ = m.SendText(state.ChatID, stepFailedText)
			return nil
		}

		if result.UpdateState != nil {
			state.MergeData(result.UpdateState)
		}
		state.UpdatedAt = time.Now()

		if result.Complete {
			return e.complete(ctx, m, state)
		}
	}

	return e.storage.Save(ctx, state)
}

// complete ends the current workflow: state is deleted unconditionally,
// then the next workflow is started when the finishing step requested one.
func (e *Engine) complete(ctx context.Context, m Messenger, state *ChatState) error {
	e.log.Info("chat engine: workflow completed",
		slog.String("platform", state.Platform),
		slog.String("user_id", state.UserID),
		slog.String("workflow_id", string(state.WorkflowID)),
	)

	if err := e.storage.Delete(ctx, state.Platform, state.UserID); err != nil {
		return err
	}

	if next := state.GetString(KeyNextWorkflow); next != "" {
		return e.StartWorkflow(ctx, m, state.Platform, state.UserID, state.ChatID, state.Username, WorkflowID(next))
	}
	return nil
}
