package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

// Options control a single completion call.
type Options struct {
	Instruction   string // system prompt base; DefaultInstruction when empty
	GlobalContext string // optional guidance merged into the system prompt
	Temperature   float64
	TopP          float64
	MaxTokens     int
}

// DefaultOptions returns the completion settings used when the caller
// supplies none.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.7,
		TopP:        1.0,
		MaxTokens:   500,
	}
}

// Config holds the Azure OpenAI connection settings for the chat client.
type Config struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
}

// Client calls an Azure OpenAI chat deployment.
type Client struct {
	client     openai.Client
	deployment string
}

// NewClient creates a chat client for the given Azure deployment.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Deployment == "" {
		return nil, fmt.Errorf("deployment name is required")
	}

	opts := []option.RequestOption{
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
	}

	return &Client{
		client:     openai.NewClient(opts...),
		deployment: cfg.Deployment,
	}, nil
}

// Deployment returns the deployment (model) name the client targets.
func (c *Client) Deployment() string {
	return c.deployment
}

// Complete sends the transcript and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, transcript Transcript, opts Options) (string, error) {
	params := c.buildParams(transcript, opts)

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &CallError{Deployment: c.deployment, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CallError{Deployment: c.deployment, Err: fmt.Errorf("no choices in response")}
	}

	slog.DebugContext(ctx, "chat completed",
		"deployment", c.deployment,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

// Stream sends the transcript and streams the reply. fn is called with each
// content delta as it arrives; the full accumulated reply is returned.
func (c *Client) Stream(ctx context.Context, transcript Transcript, opts Options, fn func(delta string)) (string, error) {
	params := c.buildParams(transcript, opts)

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" && fn != nil {
			fn(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		return "", &CallError{Deployment: c.deployment, Err: err}
	}
	if len(acc.Choices) == 0 {
		return "", &CallError{Deployment: c.deployment, Err: fmt.Errorf("no choices in response")}
	}

	return acc.Choices[0].Message.Content, nil
}

func (c *Client) buildParams(transcript Transcript, opts Options) openai.ChatCompletionNewParams {
	messages := transcript.BuildMessages(opts.Instruction, opts.GlobalContext)

	return openai.ChatCompletionNewParams{
		Model:       c.deployment,
		Messages:    convertMessages(messages),
		Temperature: openai.Float(opts.Temperature),
		TopP:        openai.Float(opts.TopP),
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
	}
}

func convertMessages(turns []Turn) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))

	for _, turn := range turns {
		switch turn.Role {
		case RoleSystem:
			result = append(result, openai.SystemMessage(turn.Content))
		case RoleUser:
			result = append(result, openai.UserMessage(turn.Content))
		case RoleAssistant:
			result = append(result, openai.AssistantMessage(turn.Content))
		}
	}

	return result
}

// CallError reports a failed completion call.
type CallError struct {
	Deployment string
	Err        error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("chat call failed for deployment %q: %v", e.Deployment, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
