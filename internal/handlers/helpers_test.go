// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"papervocab/internal/handlers"
	"papervocab/internal/llm/mocks"
	"papervocab/internal/model"
	"papervocab/internal/repository"
	"papervocab/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// testApp はテスト用にアプリケーション一式を組み立てた結果をまとめます
type testApp struct {
	server       *httptest.Server
	wordRepo     repository.WordRepository
	settingsRepo repository.SettingsRepository
	mockLLM      *mocks.Client
}

// setupTestApp はインメモリストアとモックLLMの上に本物のルーティングを組み立てます
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	kv := repository.NewMemoryKVStore()
	wordRepo := repository.NewKVWordRepository(kv)
	settingsRepo := repository.NewKVSettingsRepository(kv)
	mockLLM := new(mocks.Client)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lookupService := service.NewLookupService(wordRepo, settingsRepo, mockLLM)
	wordService := service.NewWordService(wordRepo)
	impexService := service.NewImpexService(wordRepo)
	reviewService := service.NewReviewService(wordRepo, settingsRepo, 20)
	settingsService := service.NewSettingsService(settingsRepo)

	lookupHandler := handlers.NewLookupHandler(lookupService, logger)
	wordHandler := handlers.NewWordHandler(wordService, impexService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/lookup", lookupHandler.Lookup)
		r.Route("/words", func(r chi.Router) {
			r.Post("/", lookupHandler.SaveWord)
			r.Get("/", wordHandler.ListWords)
			r.Delete("/", wordHandler.ClearWords)
			r.Get("/export", wordHandler.ExportWords)
			r.Post("/import", wordHandler.ImportWords)
			r.Get("/{word_id}", wordHandler.GetWord)
			r.Patch("/{word_id}", wordHandler.PatchWord)
			r.Delete("/{word_id}", wordHandler.DeleteWord)
		})
		r.Get("/stats", wordHandler.GetStats)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.PutSettings)
		})
		r.Route("/review", func(r chi.Router) {
			r.Get("/", reviewHandler.GetStatus)
			r.Post("/session", reviewHandler.StartSession)
			r.Delete("/session", reviewHandler.AbortSession)
			r.Get("/card", reviewHandler.GetCard)
			r.Post("/card/flip", reviewHandler.FlipCard)
			r.Post("/card/grade", reviewHandler.GradeCard)
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testApp{
		server:       server,
		wordRepo:     wordRepo,
		settingsRepo: settingsRepo,
		mockLLM:      mockLLM,
	}
}

// sendRequest はHTTPリクエストを送信し、ステータスコードとボディを返します。
// Body が string ならそのまま、そうでなければJSONにして送る。
func sendRequest(t *testing.T, server *httptest.Server, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if body != nil {
		if strPayload, ok := body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(method, server.URL+path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Failed to send request")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	return resp.StatusCode, respBody
}

// decodeJSON はレスポンスボディを指定の型にデコードします
func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "Failed to unmarshal response body: %s", string(body))
	return v
}

// errorCode はエラーレスポンスからエラーコードを取り出します
func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	resp := decodeJSON[model.APIErrorResponse](t, body)
	return resp.Error.Code
}

// enableAPIKey はテスト用のAPIキーを設定に保存します
func enableAPIKey(t *testing.T, app *testApp) {
	t.Helper()
	settings := model.DefaultSettings()
	settings.APIKey = "sk-test"
	require.NoError(t, app.settingsRepo.Save(context.Background(), settings))
}
