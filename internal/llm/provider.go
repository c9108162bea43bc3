// internal/llm/provider.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"papervocab/internal/model"
)

// Provider はLLMプロバイダ1種類分のワイヤーフォーマットを実装します。
// リトライやタイムアウトはClient側の責務で、ここではリクエストの組み立てと
// レスポンスからのテキスト抽出だけを行う。
type Provider interface {
	BuildRequest(ctx context.Context, prompt string, settings model.Settings) (*http.Request, error)
	ExtractText(body []byte) (string, error)
}

// ForProvider は設定されたプロバイダ名に対応する実装を返します。
// 未知の値はOpenAI扱い (originalのswitch-defaultと同じ)。
func ForProvider(name model.LLMProvider) Provider {
	switch name {
	case model.ProviderAnthropic:
		return anthropicProvider{}
	case model.ProviderCustom:
		// OpenAI互換APIなのでワイヤーフォーマットを使い回す
		return openAIProvider{}
	default:
		return openAIProvider{}
	}
}

// trimBaseURL は末尾のスラッシュをすべて取り除きます
func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// --- OpenAI (Chat Completions) ---

const openAISystemPrompt = "你是一个学术英语词汇助手，帮助用户理解学术论文中的英文生词。请严格按 JSON 格式返回结果。"

type openAIProvider struct{}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (openAIProvider) BuildRequest(ctx context.Context, prompt string, settings model.Settings) (*http.Request, error) {
	url := trimBaseURL(settings.APIBaseURL) + "/chat/completions"

	body, err := json.Marshal(openAIRequest{
		Model: settings.ModelName,
		Messages: []openAIMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+settings.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (openAIProvider) ExtractText(body []byte) (string, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// --- Anthropic (Messages API) ---

const anthropicVersion = "2023-06-01"

type anthropicProvider struct{}

type anthropicRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []openAIMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (anthropicProvider) BuildRequest(ctx context.Context, prompt string, settings model.Settings) (*http.Request, error) {
	url := trimBaseURL(settings.APIBaseURL) + "/v1/messages"

	body, err := json.Marshal(anthropicRequest{
		Model:     settings.ModelName,
		MaxTokens: 300,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: build request: %w", err)
	}
	req.Header.Set("x-api-key", settings.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (anthropicProvider) ExtractText(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", nil
	}
	return resp.Content[0].Text, nil
}
