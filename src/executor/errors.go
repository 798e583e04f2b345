package executor

import "errors"

var (
	ErrModelClientRequired  = errors.New("model client is required")
	ErrConversationRequired = errors.New("conversation is required")
)
