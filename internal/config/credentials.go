// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves credentials and settings for the research pipeline.
// Credentials come from an ordered chain of sources (the .secrets/ directory,
// the environment, the config file); settings come from viper with defaults.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/sage-lens/internal/secrets"
)

// Credential keys recognized by the pipeline.
const (
	KeyOpenAI    = "OPENAI_API_KEY"
	KeyAnthropic = "ANTHROPIC_API_KEY"
	KeyDeepSeek  = "DEEPSEEK_API_KEY"
	KeyGemini    = "GEMINI_API_KEY"
	KeyTavily    = "TAVILY_API_KEY"
	KeySerper    = "SERPER_API_KEY"
	KeyYouTube   = "YOUTUBE_API_KEY"
)

// KeySpec describes one credential for reporting.
type KeySpec struct {
	Key      string
	Required bool
	Purpose  string
}

// CredentialKeys lists every recognized credential in reporting order.
var CredentialKeys = []KeySpec{
	{Key: KeyOpenAI, Required: true, Purpose: "primary LLM (OpenAI)"},
	{Key: KeyAnthropic, Purpose: "secondary LLM (Anthropic)"},
	{Key: KeyDeepSeek, Purpose: "tertiary LLM (DeepSeek)"},
	{Key: KeyGemini, Purpose: "additional LLM (Gemini)"},
	{Key: KeyTavily, Purpose: "web search A (Tavily)"},
	{Key: KeySerper, Purpose: "web search B (Serper)"},
	{Key: KeyYouTube, Purpose: "video search via YouTube Data API"},
}

// Provider is a source of credential values.
type Provider interface {
	Name() string
	Lookup(key string) (string, bool)
}

// EnvProvider reads credentials from the process environment.
type EnvProvider struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func (EnvProvider) Name() string { return "environment" }

func (p EnvProvider) Lookup(key string) (string, bool) {
	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(key)
}

// SecretsProvider reads credentials loaded from a secrets directory.
type SecretsProvider struct {
	Secrets secrets.Set
}

func (SecretsProvider) Name() string { return "secrets" }

func (p SecretsProvider) Lookup(key string) (string, bool) {
	return p.Secrets.Get(key)
}

// ViperProvider reads credentials from the "credentials" section of the config
// file, keyed by the lowercased credential name (credentials.openai_api_key).
type ViperProvider struct {
	V *viper.Viper
}

func (ViperProvider) Name() string { return "config" }

func (p ViperProvider) Lookup(key string) (string, bool) {
	if p.V == nil {
		return "", false
	}
	k := "credentials." + strings.ToLower(key)
	if !p.V.IsSet(k) {
		return "", false
	}
	return p.V.GetString(k), true
}

// MapProvider serves credentials from a fixed map.
type MapProvider map[string]string

func (MapProvider) Name() string { return "map" }

func (m MapProvider) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Chain consults providers in order; the first non-empty cleaned value wins.
type Chain []Provider

func (Chain) Name() string { return "chain" }

func (c Chain) Lookup(key string) (string, bool) {
	for _, p := range c {
		if v, ok := p.Lookup(key); ok {
			if v = Clean(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Source returns the name of the provider that supplies key, or "" if none does.
func (c Chain) Source(key string) string {
	for _, p := range c {
		if v, ok := p.Lookup(key); ok && Clean(v) != "" {
			return p.Name()
		}
	}
	return ""
}

// Clean trims whitespace and surrounding quotes from a credential value.
func Clean(v string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), `"'`))
}

// Credentials holds the resolved API keys. Only OpenAIKey is required.
type Credentials struct {
	OpenAIKey    string `env:"OPENAI_API_KEY" validate:"required"`
	AnthropicKey string `env:"ANTHROPIC_API_KEY"`
	DeepSeekKey  string `env:"DEEPSEEK_API_KEY"`
	GeminiKey    string `env:"GEMINI_API_KEY"`
	TavilyKey    string `env:"TAVILY_API_KEY"`
	SerperKey    string `env:"SERPER_API_KEY"`
	YouTubeKey   string `env:"YOUTUBE_API_KEY"`
}

// LoadCredentials resolves every recognized key from p. Missing keys are left
// empty; validation happens in Load.
func LoadCredentials(p Provider) Credentials {
	get := func(key string) string {
		v, _ := p.Lookup(key)
		return Clean(v)
	}
	return Credentials{
		OpenAIKey:    get(KeyOpenAI),
		AnthropicKey: get(KeyAnthropic),
		DeepSeekKey:  get(KeyDeepSeek),
		GeminiKey:    get(KeyGemini),
		TavilyKey:    get(KeyTavily),
		SerperKey:    get(KeySerper),
		YouTubeKey:   get(KeyYouTube),
	}
}

// ProviderKey returns the API key for an LLM provider ID.
func (c Credentials) ProviderKey(id string) string {
	switch id {
	case "openai":
		return c.OpenAIKey
	case "anthropic":
		return c.AnthropicKey
	case "deepseek":
		return c.DeepSeekKey
	case "gemini":
		return c.GeminiKey
	}
	return ""
}

// Has reports whether the LLM provider ID has a key.
func (c Credentials) Has(id string) bool {
	return c.ProviderKey(id) != ""
}

// ProviderIDs lists the LLM providers with keys in generation order.
func (c Credentials) ProviderIDs() []string {
	var ids []string
	for _, id := range []string{"openai", "anthropic", "deepseek", "gemini"} {
		if c.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
