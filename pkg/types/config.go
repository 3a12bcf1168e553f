package types

import "time"

// HTTPConfig holds shared HTTP settings used by adapters that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with search requests
	// (e.g. "sage-lens/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings for the LLM provider adapters.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	OpenAIModel    string `json:"openai_model" yaml:"openai_model" validate:"required"`
	AnthropicModel string `json:"anthropic_model" yaml:"anthropic_model" validate:"required"`
	DeepSeekModel  string `json:"deepseek_model" yaml:"deepseek_model" validate:"required"`
	GeminiModel    string `json:"gemini_model" yaml:"gemini_model" validate:"required"`

	// DeepSeekBaseURL is the OpenAI-compatible endpoint for DeepSeek.
	DeepSeekBaseURL string `json:"deepseek_base_url" yaml:"deepseek_base_url" validate:"required,url"`

	// Temperature is the sampling temperature (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`

	// MaxTokens caps each completion (default 4000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" validate:"gt=0"`

	// RefinementProvider runs the polish and analysis stages in enriched mode.
	RefinementProvider string `json:"refinement_provider" yaml:"refinement_provider" validate:"oneof=openai anthropic deepseek gemini"`
}

// Video backend selectors.
const (
	VideoBackendAuto   = "auto"
	VideoBackendScrape = "scrape"
	VideoBackendAPI    = "api"
)

// SearchConfig holds settings for the web and video search adapters.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxWebResults caps the merged web reference list (default 10).
	MaxWebResults int `json:"max_web_results" yaml:"max_web_results" validate:"gt=0"`

	// MaxVideos caps the video reference list (default 5).
	MaxVideos int `json:"max_videos" yaml:"max_videos" validate:"gt=0"`

	// MaxRetries is the number of retries on HTTP 429 (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" validate:"gte=0"`

	// VideoBackend selects scrape, api, or auto (api when a key is present).
	VideoBackend string `json:"video_backend" yaml:"video_backend" validate:"oneof=auto scrape api"`

	// Scholar adds Semantic Scholar papers to the web references. It needs
	// no credential.
	Scholar bool `json:"scholar" yaml:"scholar"`
}

// LogConfig holds settings for the diagnostics logger.
type LogConfig struct {
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`

	// File is an optional rotated log file; empty logs to stderr only.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development"`
}
