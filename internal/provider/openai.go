package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ai-commit/internal/config"
	"ai-commit/internal/llm"
	"ai-commit/internal/logger"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls a hosted chat-completion endpoint.
type OpenAIProvider struct {
	endpoint string
	model    string
	extract  bool
	client   *http.Client
}

// NewOpenAIProvider builds the remote backend from the settings file. The
// HTTP client has no timeout of its own; cancellation comes from ctx.
func NewOpenAIProvider(cfg *config.Config, client *http.Client) *OpenAIProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &OpenAIProvider{
		endpoint: cfg.OpenAIEndpoint(),
		model:    cfg.OpenAIModel(),
		extract:  cfg.ExtractMessage(),
		client:   client,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// GenerateCommitMessage posts the prompt once and returns the response body
// verbatim, whatever the status code. Only transport failures are errors.
//
// The body is the whole completion envelope, not the message text. That
// matches the tool's historical behavior; OPENAI_EXTRACT_MESSAGE=true opts
// into returning choices[0].message.content instead.
func (p *OpenAIProvider) GenerateCommitMessage(ctx context.Context, changes llm.ChangeSet, apiKey string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llm.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: llm.BuildCommitPrompt(changes)},
		},
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	logger.Debugf("POST %s (model %s, %d byte payload)", p.endpoint, p.model, len(jsonData))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrRemoteUnavailable, err)
	}

	logger.Debugf("remote responded with status %d (%d bytes)", resp.StatusCode, len(body))
	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warnf("remote backend returned HTTP %d; using the body as-is", resp.StatusCode)
	}

	if p.extract {
		return extractMessage(body)
	}
	return string(body), nil
}

func extractMessage(body []byte) (string, error) {
	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrRemoteUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrRemoteUnavailable)
	}

	message := strings.TrimSpace(completion.Choices[0].Message.Content)
	if message == "" {
		return "", fmt.Errorf("%w: empty message in response", ErrRemoteUnavailable)
	}
	return message, nil
}
