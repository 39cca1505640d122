// Package assistants implements agent.Platform on top of an Assistants-style
// agents endpoint using the OpenAI Go SDK.
package assistants

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"summarizer-agent/internal/agent"
	"summarizer-agent/internal/config"
	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/tools"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// TokenScope is the audience requested when authenticating with Azure credentials
const TokenScope = "https://ml.azure.com/.default"

// Client talks to the project's agents endpoint
type Client struct {
	sdk openai.Client
}

// NewClient builds a Client for the project in cfg. A project API key is sent
// as the api-key header; without one the ambient Azure credential chain is used.
func NewClient(cfg config.PlatformConfig, opts ...option.RequestOption) (*Client, error) {
	endpoint := cfg.Project.Endpoint
	if endpoint == "" {
		return nil, fmt.Errorf("project endpoint is required")
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = config.DefaultAPIVersion
	}

	base := []option.RequestOption{
		option.WithBaseURL(endpoint),
		option.WithQuery("api-version", apiVersion),
		// Platform errors are fatal and a retried create would duplicate resources
		option.WithMaxRetries(0),
	}

	if cfg.APIKey != "" {
		logger.Log.Debug("Authenticating to agents endpoint with project API key")
		base = append(base, option.WithHeader("api-key", cfg.APIKey))
	} else {
		logger.Log.Debug("Authenticating to agents endpoint with Azure default credential")
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("error creating Azure credential: %w", err)
		}
		base = append(base, option.WithMiddleware(bearerTokenMiddleware(cred)))
	}

	return &Client{sdk: openai.NewClient(append(base, opts...)...)}, nil
}

func bearerTokenMiddleware(cred azcore.TokenCredential) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		token, err := cred.GetToken(req.Context(), policy.TokenRequestOptions{Scopes: []string{TokenScope}})
		if err != nil {
			return nil, fmt.Errorf("error acquiring access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token.Token)
		return next(req)
	}
}

func (c *Client) CreateAgent(ctx context.Context, spec agent.AgentSpec) (*agent.Identity, error) {
	params := openai.BetaAssistantNewParams{
		Model: openai.ChatModel(spec.Model),
		Tools: toolParams(spec.Tools),
	}
	if spec.Name != "" {
		params.Name = openai.String(spec.Name)
	}
	if spec.Description != "" {
		params.Description = openai.String(spec.Description)
	}
	if spec.Instructions != "" {
		params.Instructions = openai.String(spec.Instructions)
	}

	assistant, err := c.sdk.Beta.Assistants.New(ctx, params)
	if err != nil {
		return nil, err
	}

	name := assistant.Name
	if name == "" {
		name = spec.Name
	}
	return &agent.Identity{Name: name, ID: assistant.ID}, nil
}

func (c *Client) CreateThread(ctx context.Context) (*agent.Thread, error) {
	thread, err := c.sdk.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return nil, err
	}
	return &agent.Thread{ID: thread.ID}, nil
}

func (c *Client) CreateMessage(ctx context.Context, threadID, role, content string) error {
	params := openai.BetaThreadMessageNewParams{
		Role:    openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{OfString: openai.String(content)},
	}
	if role == agent.RoleAssistant {
		params.Role = openai.BetaThreadMessageNewParamsRoleAssistant
	}

	_, err := c.sdk.Beta.Threads.Messages.New(ctx, threadID, params)
	return err
}

func (c *Client) CreateRun(ctx context.Context, threadID, agentID string) (*agent.Run, error) {
	run, err := c.sdk.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{AssistantID: agentID})
	if err != nil {
		return nil, err
	}
	return toRun(run), nil
}

func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*agent.Run, error) {
	run, err := c.sdk.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, err
	}
	return toRun(run), nil
}

func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []agent.ToolOutput) (*agent.Run, error) {
	params := openai.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: make([]openai.BetaThreadRunSubmitToolOutputsParamsToolOutput, 0, len(outputs)),
	}
	for _, out := range outputs {
		params.ToolOutputs = append(params.ToolOutputs, openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(out.ToolCallID),
			Output:     openai.String(out.Output),
		})
	}

	run, err := c.sdk.Beta.Threads.Runs.SubmitToolOutputs(ctx, threadID, runID, params)
	if err != nil {
		return nil, err
	}
	return toRun(run), nil
}

func (c *Client) ListMessages(ctx context.Context, threadID string) ([]agent.Message, error) {
	iter := c.sdk.Beta.Threads.Messages.ListAutoPaging(ctx, threadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderAsc,
	})

	var messages []agent.Message
	for iter.Next() {
		messages = append(messages, toMessage(iter.Current()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func toolParams(defs []tools.Definition) []openai.AssistantToolUnionParam {
	params := make([]openai.AssistantToolUnionParam, 0, len(defs))
	for _, def := range defs {
		fn := openai.FunctionDefinitionParam{
			Name:       def.Name,
			Parameters: openai.FunctionParameters(def.Parameters),
		}
		if def.Description != "" {
			fn.Description = openai.String(def.Description)
		}
		params = append(params, openai.AssistantToolUnionParam{
			OfFunction: &openai.FunctionToolParam{Function: fn},
		})
	}
	return params
}

func toRun(run *openai.Run) *agent.Run {
	out := &agent.Run{
		ID:       run.ID,
		ThreadID: run.ThreadID,
		Status:   agent.RunStatus(run.Status),
	}

	for _, call := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, agent.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	if run.LastError.Code != "" || run.LastError.Message != "" {
		out.LastError = &agent.RunError{
			Code:    string(run.LastError.Code),
			Message: run.LastError.Message,
		}
	}
	return out
}

func toMessage(msg openai.Message) agent.Message {
	out := agent.Message{ID: msg.ID, Role: string(msg.Role)}
	for _, block := range msg.Content {
		content := agent.MessageContent{Type: block.Type}
		if block.Type == agent.ContentTypeText {
			content.Text = &agent.TextContent{Value: block.Text.Value}
		}
		out.Content = append(out.Content, content)
	}
	return out
}
