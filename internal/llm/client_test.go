// internal/llm/client_test.go
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"papervocab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(baseURL string, provider model.LLMProvider) model.Settings {
	s := model.DefaultSettings()
	s.LLMProvider = provider
	s.APIKey = "test-key"
	s.APIBaseURL = baseURL
	s.ModelName = "test-model"
	return s
}

func openAIBody(content string) string {
	return `{"choices":[{"message":{"content":` + mustMarshal(content) + `}}]}`
}

func mustMarshal(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestHTTPClient_Query_OpenAIのリクエスト形式(t *testing.T) {
	var captured struct {
		path string
		auth string
		body openAIRequest
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.Write([]byte(openAIBody("ok")))
	}))
	defer server.Close()

	client := NewHTTPClient(WithRetryDelay(time.Millisecond))
	// 末尾のスラッシュは取り除かれてからパスが連結される
	text, err := client.Query(context.Background(), "test prompt", testSettings(server.URL+"///", model.ProviderOpenAI))

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "/chat/completions", captured.path)
	assert.Equal(t, "Bearer test-key", captured.auth)
	assert.Equal(t, "test-model", captured.body.Model)
	assert.InDelta(t, 0.3, captured.body.Temperature, 0.001)
	require.Len(t, captured.body.Messages, 2)
	assert.Equal(t, "system", captured.body.Messages[0].Role)
	assert.Equal(t, openAISystemPrompt, captured.body.Messages[0].Content)
	assert.Equal(t, "user", captured.body.Messages[1].Role)
	assert.Equal(t, "test prompt", captured.body.Messages[1].Content)
}

func TestHTTPClient_Query_Anthropicのリクエスト形式(t *testing.T) {
	var captured struct {
		path    string
		apiKey  string
		version string
		body    anthropicRequest
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("x-api-key")
		captured.version = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.Write([]byte(`{"content":[{"text":"回答"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(WithRetryDelay(time.Millisecond))
	text, err := client.Query(context.Background(), "test prompt", testSettings(server.URL, model.ProviderAnthropic))

	require.NoError(t, err)
	assert.Equal(t, "回答", text)
	assert.Equal(t, "/v1/messages", captured.path)
	assert.Equal(t, "test-key", captured.apiKey)
	assert.Equal(t, "2023-06-01", captured.version)
	assert.Equal(t, 300, captured.body.MaxTokens)
	require.Len(t, captured.body.Messages, 1)
	assert.Equal(t, "user", captured.body.Messages[0].Role)
}

func TestHTTPClient_Query_customはOpenAI互換(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(openAIBody("ok")))
	}))
	defer server.Close()

	client := NewHTTPClient(WithRetryDelay(time.Millisecond))
	_, err := client.Query(context.Background(), "p", testSettings(server.URL, model.ProviderCustom))

	require.NoError(t, err)
	assert.Equal(t, "/chat/completions", path)
}

func TestHTTPClient_Query_一度失敗してもリトライで成功する(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(openAIBody("recovered")))
	}))
	defer server.Close()

	client := NewHTTPClient(WithRetryDelay(time.Millisecond))
	text, err := client.Query(context.Background(), "p", testSettings(server.URL, model.ProviderOpenAI))

	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_Query_全試行失敗なら最後のエラーを返す(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(WithRetryDelay(time.Millisecond))
	_, err := client.Query(context.Background(), "p", testSettings(server.URL, model.ProviderOpenAI))

	require.Error(t, err)
	// ステータスコードとボディがそのままエラーメッセージに折り込まれる
	assert.Contains(t, err.Error(), "API error 429")
	assert.Contains(t, err.Error(), "rate limited")
	// 初回 + リトライ1回で打ち止め
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_Query_choicesが空なら空文字列(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(WithRetryDelay(time.Millisecond))
	text, err := client.Query(context.Background(), "p", testSettings(server.URL, model.ProviderOpenAI))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestHTTPClient_Query_リトライ待機中のキャンセル(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := NewHTTPClient(WithRetryDelay(10 * time.Second))

	done := make(chan error, 1)
	go func() {
		_, err := client.Query(ctx, "p", testSettings(server.URL, model.ProviderOpenAI))
		done <- err
	}()

	// 1回目の失敗後、リトライ待機に入ったところでキャンセルする
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Query did not return after context cancellation")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("ubiquitous", "The protocol is ubiquitous in modern networks.")
	assert.Contains(t, prompt, "ubiquitous")
	assert.Contains(t, prompt, "The protocol is ubiquitous in modern networks.")
	assert.Contains(t, prompt, "lemma")
}
