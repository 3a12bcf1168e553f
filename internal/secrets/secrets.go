// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, anthropic-api-key, deepseek-api-key,
// gemini-api-key, tavily-api-key, serper-api-key, youtube-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Set maps key file names to their trimmed contents.
type Set map[string]string

// Load reads all files in dir and returns a Set of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty Set.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := unquote(strings.TrimSpace(string(data)))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// FileName maps an environment-style key (OPENAI_API_KEY) to its key file
// name (openai-api-key).
func FileName(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "-"))
}

// Get returns the secret for key, accepting either the environment-style name
// or the key file name.
func (s Set) Get(key string) (string, bool) {
	if v, ok := s[key]; ok {
		return v, true
	}
	v, ok := s[FileName(key)]
	return v, ok
}

// Keys returns the loaded key file names.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// unquote strips one layer of matching single or double quotes, which show up
// when keys are pasted from .env files.
func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}
