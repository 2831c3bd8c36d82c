package chat

import "time"

// ChatState is the per-user conversation state: one per active user,
// created on /start and deleted when a flow completes.
type ChatState struct {
	Platform    string            `json:"platform" bson:"platform"`
	UserID      string            `json:"user_id" bson:"user_id"`
	ChatID      string            `json:"chat_id" bson:"chat_id"`
	Username    string            `json:"username" bson:"username"`
	WorkflowID  WorkflowID        `json:"workflow_id" bson:"workflow_id"`
	CurrentStep StepID            `json:"current_step" bson:"current_step"`
	Data        map[string]string `json:"data" bson:"data"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

// NewChatState creates a new ChatState with default values.
func NewChatState(platform, userID, chatID, username string, workflowID WorkflowID, initialStep StepID) *ChatState {
	return &ChatState{
		Platform:    platform,
		UserID:      userID,
		ChatID:      chatID,
		Username:    username,
		WorkflowID:  workflowID,
		CurrentStep: initialStep,
		Data:        make(map[string]string),
		UpdatedAt:   time.Now(),
	}
}

// GetString retrieves a collected answer from the state data.
func (s *ChatState) GetString(key string) string {
	return s.Data[key]
}

// Set stores a collected answer in the state data.
func (s *ChatState) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

// MergeData merges additional answers into the state.
func (s *ChatState) MergeData(data map[string]string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	for k, v := range data {
		s.Data[k] = v
	}
}
