// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// Settings is the validated configuration consumed by the pipeline.
type Settings struct {
	Credentials Credentials
	Provider    types.ProviderConfig
	Search      types.SearchConfig
	Log         types.LogConfig

	// EnrichedModeAvailable is resolved once at load time: the refinement
	// provider has a credential.
	EnrichedModeAvailable bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider.timeout", 90*time.Second)
	v.SetDefault("provider.temperature", 0.3)
	v.SetDefault("provider.max_tokens", 4000)
	v.SetDefault("provider.openai_model", "gpt-4-turbo")
	v.SetDefault("provider.anthropic_model", "claude-3-5-sonnet-20241022")
	v.SetDefault("provider.deepseek_model", "deepseek-chat")
	v.SetDefault("provider.gemini_model", "gemini-2.0-flash")
	v.SetDefault("provider.deepseek_base_url", "https://api.deepseek.com")
	v.SetDefault("provider.refinement", "openai")

	v.SetDefault("search.timeout", 15*time.Second)
	v.SetDefault("search.user_agent", "sage-lens/0.1")
	v.SetDefault("search.max_web_results", 10)
	v.SetDefault("search.max_videos", 5)
	v.SetDefault("search.max_retries", 2)
	v.SetDefault("search.video_backend", types.VideoBackendAuto)
	v.SetDefault("search.scholar", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.development", false)
}

// Load reads settings from v and credentials from p, then validates them.
// A missing primary credential or an invalid setting yields a
// ConfigurationError failure.
func Load(v *viper.Viper, p Provider) (*Settings, error) {
	s := &Settings{
		Credentials: LoadCredentials(p),
		Provider: types.ProviderConfig{
			HTTPConfig:         types.HTTPConfig{Timeout: v.GetDuration("provider.timeout")},
			OpenAIModel:        v.GetString("provider.openai_model"),
			AnthropicModel:     v.GetString("provider.anthropic_model"),
			DeepSeekModel:      v.GetString("provider.deepseek_model"),
			GeminiModel:        v.GetString("provider.gemini_model"),
			DeepSeekBaseURL:    v.GetString("provider.deepseek_base_url"),
			Temperature:        v.GetFloat64("provider.temperature"),
			MaxTokens:          v.GetInt("provider.max_tokens"),
			RefinementProvider: v.GetString("provider.refinement"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: v.GetString("search.user_agent"),
			},
			MaxWebResults: v.GetInt("search.max_web_results"),
			MaxVideos:     v.GetInt("search.max_videos"),
			MaxRetries:    v.GetInt("search.max_retries"),
			VideoBackend:  v.GetString("search.video_backend"),
			Scholar:       v.GetBool("search.scholar"),
		},
		Log: types.LogConfig{
			Level:       v.GetString("log.level"),
			File:        v.GetString("log.file"),
			Development: v.GetBool("log.development"),
		},
	}

	if err := validate(s); err != nil {
		return nil, err
	}

	s.EnrichedModeAvailable = s.Credentials.Has(s.Provider.RefinementProvider)
	return s, nil
}

var validate = newValidator()

func newValidator() func(*Settings) error {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		if name, _, _ := strings.Cut(f.Tag.Get("yaml"), ","); name != "" {
			return name
		}
		return f.Name
	})

	return func(s *Settings) error {
		err := val.Struct(s)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return types.NewFailure(types.KindConfiguration, "", err)
		}
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" && strings.HasSuffix(fe.Field(), "_API_KEY") {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, fmt.Sprintf("%s (%s=%s, got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		}
		var parts []string
		if len(missing) > 0 {
			parts = append(parts, "missing required credentials: "+strings.Join(missing, ", "))
		}
		if len(invalid) > 0 {
			parts = append(parts, "invalid settings: "+strings.Join(invalid, "; "))
		}
		return types.NewFailure(types.KindConfiguration, "", errors.New(strings.Join(parts, "; ")))
	}
}
