package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// HuggingFaceRouterURL is the OpenAI-compatible endpoint that routes to
// hosted open models.
const HuggingFaceRouterURL = "https://router.huggingface.co/v1"

// OpenAICompatProvider talks to any OpenAI-compatible chat-completion API.
type OpenAICompatProvider struct {
	client      *openai.Client
	apiKey      string
	keyEnvVar   string
	model       string
	labelPrefix string
	temperature float32
	timeout     time.Duration
}

// NewHuggingFace returns a provider backed by the HuggingFace router.
// A missing key is reported at call time, not here, so the driver can turn
// it into an answer string.
func NewHuggingFace(apiKey, model string, temperature float32, timeout time.Duration) *OpenAICompatProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = HuggingFaceRouterURL
	return &OpenAICompatProvider{
		client:      openai.NewClientWithConfig(cfg),
		apiKey:      apiKey,
		keyEnvVar:   "HUGGINGFACE_API_KEY",
		model:       model,
		labelPrefix: "HuggingFace",
		temperature: temperature,
		timeout:     timeout,
	}
}

// NewOpenAI returns a provider backed by the OpenAI API.
func NewOpenAI(apiKey, model string, temperature float32, timeout time.Duration) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		client:      openai.NewClient(apiKey),
		apiKey:      apiKey,
		keyEnvVar:   "OPENAI_API_KEY",
		model:       model,
		labelPrefix: "OpenAI",
		temperature: temperature,
		timeout:     timeout,
	}
}

// Complete sends one chat-completion call bounded by the configured timeout.
func (p *OpenAICompatProvider) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("Missing %s in .env", p.keyEnvVar)
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: p.temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Label identifies the provider and model.
func (p *OpenAICompatProvider) Label() string {
	return p.labelPrefix + "/" + p.model
}
