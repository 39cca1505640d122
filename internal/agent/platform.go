// Package agent provisions the hosted summarization agent and runs one
// conversation against it.
package agent

import (
	"context"

	"summarizer-agent/internal/tools"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	ContentTypeText = "text"
)

// RunStatus is the lifecycle state of a run reported by the platform
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusExpired        RunStatus = "expired"
)

// IsTerminal reports whether the run will not change status again
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCancelled, RunStatusFailed, RunStatusCompleted, RunStatusIncomplete, RunStatusExpired:
		return true
	}
	return false
}

// Platform is the agent-hosting capability set the pipeline depends on
type Platform interface {
	CreateAgent(ctx context.Context, spec AgentSpec) (*Identity, error)
	CreateThread(ctx context.Context) (*Thread, error)
	CreateMessage(ctx context.Context, threadID, role, content string) error
	CreateRun(ctx context.Context, threadID, agentID string) (*Run, error)
	GetRun(ctx context.Context, threadID, runID string) (*Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (*Run, error)
	// ListMessages returns the thread's messages oldest first
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
}

// AgentSpec is what the platform needs to instantiate an agent
type AgentSpec struct {
	Model        string
	Name         string
	Description  string
	Instructions string
	Tools        []tools.Definition
}

// Identity is the platform-assigned identity of a created agent
type Identity struct {
	Name string
	ID   string
}

// Thread is a conversation thread on the platform
type Thread struct {
	ID string
}

// Run is one execution of an agent over a thread
type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	ToolCalls []ToolCall
	LastError *RunError
}

// RunError is the platform's explanation for a failed run
type RunError struct {
	Code    string
	Message string
}

// ToolCall is a function call the agent asks the caller to execute
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolOutput answers a ToolCall
type ToolOutput struct {
	ToolCallID string
	Output     string
}

// Message is a thread message
type Message struct {
	ID      string
	Role    string
	Content []MessageContent
}

// MessageContent is one content block; Text is set only for text blocks
type MessageContent struct {
	Type string
	Text *TextContent
}

// TextContent is the payload of a text content block
type TextContent struct {
	Value string
}

// ToolExecutor runs tool calls requested during a run
type ToolExecutor interface {
	Execute(ctx context.Context, name, arguments string) string
}
