package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAssistantMessage means the thread holds no assistant reply
	ErrNoAssistantMessage = errors.New("no assistant message in thread")
	// ErrNoTextContent means the last assistant reply does not start with a text block
	ErrNoTextContent = errors.New("assistant message has no text content")
)

// ExtractResponse returns the first content block of the last assistant
// message. Messages must be ordered oldest first.
func ExtractResponse(messages []Message) (string, error) {
	var last *Message
	for i := range messages {
		if messages[i].Role == RoleAssistant {
			last = &messages[i]
		}
	}
	if last == nil {
		return "", ErrNoAssistantMessage
	}

	if len(last.Content) == 0 {
		return "", fmt.Errorf("%w: message %s is empty", ErrNoTextContent, last.ID)
	}

	first := last.Content[0]
	if first.Type != ContentTypeText || first.Text == nil {
		return "", fmt.Errorf("%w: message %s starts with a %q block", ErrNoTextContent, last.ID, first.Type)
	}

	return first.Text.Value, nil
}
