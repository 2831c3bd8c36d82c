package chat

import (
	"context"
)

// StepID is a unique identifier for a step within a workflow.
type StepID string

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// StepResult represents the outcome of handling an event in a step.
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]string
	Complete    bool
	Error       error
}

// UserInput represents a normalized incoming event.
type UserInput struct {
	Text string
}

// Step defines the interface for a single workflow step.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Enter is called when the user enters this step.
	Enter(ctx context.Context, m Messenger, state *ChatState) StepResult

	// HandleInput processes user input.
	HandleInput(ctx context.Context, m Messenger, state *ChatState, input UserInput) StepResult
}

// Workflow defines the interface for a complete workflow.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// InitialStep returns the first step of the workflow.
	InitialStep() StepID

	// GetStep returns a step by its ID.
	GetStep(id StepID) (Step, bool)
}

// Storage handles persistence of chat states.
type Storage interface {
	Save(ctx context.Context, state *ChatState) error
	Load(ctx context.Context, platform, userID string) (*ChatState, error)
	Delete(ctx context.Context, platform, userID string) error
}

// Messenger is the platform UI adapter interface.
type Messenger interface {
	SendText(chatID, text string) error
	SendMenu(chatID, text string, rows [][]MenuButton) error
	SendTyping(chatID string) error
}

// MenuButton represents a button in a reply/menu keyboard.
type MenuButton struct {
	Text string
}
