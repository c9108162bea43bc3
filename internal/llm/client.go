//go:generate mockery --name Client --output ./mocks --outpkg mocks --case=underscore
package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
)

const (
	// QueryTimeout は1回の試行あたりのタイムアウト
	QueryTimeout = 10 * time.Second
	// RetryDelay はリトライ前の待機時間
	RetryDelay = 2 * time.Second
	// maxRetries はリトライ回数 (合計で最大2回の試行)
	maxRetries = 1
)

// Client はプロバイダに依存しないLLM問い合わせの契約です。
// プロンプトを送り、アシスタントの生テキストを返す。パースはしない。
type Client interface {
	Query(ctx context.Context, prompt string, settings model.Settings) (string, error)
}

type httpClient struct {
	client     *http.Client
	timeout    time.Duration
	retryDelay time.Duration
}

// Option は httpClient の設定を変更します (テストでの時間短縮用)
type Option func(*httpClient)

func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.timeout = d }
}

func WithRetryDelay(d time.Duration) Option {
	return func(c *httpClient) { c.retryDelay = d }
}

func NewHTTPClient(opts ...Option) Client {
	c := &httpClient{
		client:     &http.Client{},
		timeout:    QueryTimeout,
		retryDelay: RetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query はプロバイダへ問い合わせます。
// 試行ごとにタイムアウトを適用し、失敗したら一定時間待って1回だけリトライする。
// 最後の試行のエラーはそのまま呼び出し元へ返す。
func (c *httpClient) Query(ctx context.Context, prompt string, settings model.Settings) (string, error) {
	logger := middleware.GetLogger(ctx)
	provider := ForProvider(settings.LLMProvider)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		text, err := c.attempt(ctx, provider, prompt, settings)
		if err == nil {
			return text, nil
		}
		lastErr = err
		logger.Warn("LLM call attempt failed",
			"attempt", attempt+1,
			"provider", string(settings.LLMProvider),
			"error", err.Error(),
		)
		if attempt < maxRetries {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}

func (c *httpClient) attempt(ctx context.Context, provider Provider, prompt string, settings model.Settings) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := provider.BuildRequest(attemptCtx, prompt, settings)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// ボディは診断用に読めるだけ読む。読めなくてもエラーにはしない。
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return provider.ExtractText(body)
}
