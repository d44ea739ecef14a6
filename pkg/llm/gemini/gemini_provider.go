package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"study-assistant-be/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type GeminiChatRequest struct {
	Contents          []*GeminiChatContent    `json:"contents"`
	SystemInstruction *GeminiChatContent      `json:"systemInstruction,omitempty"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiChatCandidate struct {
	Content      *GeminiChatContent `json:"content"`
	FinishReason string             `json:"finishReason"`
}

type GeminiPromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type GeminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type GeminiChatResponse struct {
	Candidates     []*GeminiChatCandidate `json:"candidates"`
	PromptFeedback *GeminiPromptFeedback  `json:"promptFeedback,omitempty"`
	Error          *GeminiAPIError        `json:"error,omitempty"`
}

// ErrEmptyResponse is returned when the API answered 200 but produced no text.
var ErrEmptyResponse = errors.New("gemini returned no candidates")

// GeminiProvider talks to the generateContent REST endpoint for one model.
type GeminiProvider struct {
	BaseURL   string
	ModelName string
	ApiKey    string
	Client    *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(baseURL, apiKey, modelName string) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		ApiKey:    apiKey,
		Client:    &http.Client{},
	}
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	payload := GeminiChatRequest{
		Contents: make([]*GeminiChatContent, 0, len(history)),
		GenerationConfig: &GeminiGenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}
	for _, msg := range history {
		part := []*GeminiChatParts{{Text: msg.Content}}
		switch msg.Role {
		case "system":
			payload.SystemInstruction = &GeminiChatContent{Parts: part}
		case "assistant", ChatMessageRoleModel:
			payload.Contents = append(payload.Contents, &GeminiChatContent{Parts: part, Role: ChatMessageRoleModel})
		default:
			payload.Contents = append(payload.Contents, &GeminiChatContent{Parts: part, Role: ChatMessageRoleUser})
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, p.ModelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var geminiRes GeminiChatResponse
	decodeErr := json.Unmarshal(resBody, &geminiRes)

	if geminiRes.Error != nil {
		return "", fmt.Errorf("gemini error %d (%s): %s", geminiRes.Error.Code, geminiRes.Error.Status, geminiRes.Error.Message)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("unmarshal response: %w", decodeErr)
	}

	return extractText(&geminiRes)
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: ChatMessageRoleUser, Content: prompt}}, opts...)
}

// extractText concatenates the parts of the first candidate.
func extractText(res *GeminiChatResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		if res.PromptFeedback != nil && res.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", res.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w (finish reason %s)", ErrEmptyResponse, res.Candidates[0].FinishReason)
	}
	return b.String(), nil
}
