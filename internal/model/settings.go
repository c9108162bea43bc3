// internal/model/settings.go
package model

// LLMProvider は問い合わせ先のプロバイダ種別
type LLMProvider string

const (
	ProviderOpenAI    LLMProvider = "openai"
	ProviderAnthropic LLMProvider = "anthropic"
	ProviderCustom    LLMProvider = "custom" // OpenAI互換のAPI
)

// Settings はユーザー設定。拡張機能の設定画面と同じフィールドを持つ。
// JSONのフィールド名は保存データの互換性のため camelCase 固定。
type Settings struct {
	LLMProvider     LLMProvider `json:"llmProvider"`
	APIKey          string      `json:"apiKey"`
	APIBaseURL      string      `json:"apiBaseUrl"`
	ModelName       string      `json:"modelName"`
	TriggerMode     string      `json:"triggerMode"`
	Hotkey          string      `json:"hotkey"`
	ReviewBatchSize int         `json:"reviewBatchSize"`
}

// DefaultSettings は未設定項目に適用されるデフォルト値を返します
func DefaultSettings() Settings {
	return Settings{
		LLMProvider:     ProviderOpenAI,
		APIKey:          "",
		APIBaseURL:      "https://api.openai.com/v1",
		ModelName:       "gpt-4o-mini",
		TriggerMode:     "icon",
		Hotkey:          "Alt",
		ReviewBatchSize: 20,
	}
}

// 設定更新リクエストDTO
type PutSettingsRequest struct {
	LLMProvider     LLMProvider `json:"llmProvider" validate:"required,oneof=openai anthropic custom"`
	APIKey          string      `json:"apiKey"`
	APIBaseURL      string      `json:"apiBaseUrl" validate:"required,url"`
	ModelName       string      `json:"modelName" validate:"required"`
	TriggerMode     string      `json:"triggerMode" validate:"omitempty,oneof=icon auto hotkey"`
	Hotkey          string      `json:"hotkey"`
	ReviewBatchSize int         `json:"reviewBatchSize" validate:"required,min=1,max=200"`
}
