package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// OpenAI talks to an OpenAI-compatible chat completions endpoint, such as
// the one Foundry Local serves for a loaded model.
type OpenAI struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	limiter     *rate.Limiter
}

// NewOpenAI creates an OpenAI backend from cfg. An empty APIKey is accepted
// because local runtimes do not authenticate.
func NewOpenAI(cfg *Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	o := &OpenAI{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.timeout(),
	}

	if cfg.RequestsPerMinute > 0 {
		// requests per minute → tokens per second, burst of one
		o.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return o
}

func (o *OpenAI) Name() string {
	return ProviderOpenAI + ":" + o.model
}

// Complete sends the transcript as a chat completion. The tool catalog is
// summarized into the system turn.
func (o *OpenAI) Complete(ctx context.Context, messages []protocol.Message, tools []protocol.Tool) response.Completion {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return response.Failed(fmt.Sprintf("Error calling model: rate limiter: %v", err))
		}
	}

	prompt := withToolSummary(messages, tools)
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    make([]openai.ChatCompletionMessage, len(prompt)),
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}
	for i, msg := range prompt {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := o.api.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return response.Failed(fmt.Sprintf("Error calling model: request timed out after %s", o.timeout))
		}
		return response.Failed(fmt.Sprintf("Error calling model: %v", err))
	}

	if len(resp.Choices) == 0 {
		return response.Failed("Error calling model: no choices in response")
	}

	return response.Stop(resp.Choices[0].Message.Content)
}
