// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory holds one secret: the filename is the key name
// and the trimmed file contents are the value.
//
// Known key files: openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// OpenAIKeyFile names the file that carries the generation API key.
const OpenAIKeyFile = "openai-api-key"

// OpenAIKeyEnv is consulted when neither configuration nor the secrets
// directory supply a key.
const OpenAIKeyEnv = "OPENAI_API_KEY"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged at warn level and skipped.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
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
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ResolveAPIKey picks the generation API key: an explicitly configured value
// first, then the secrets file, then the environment. An empty result means
// generation runs unconfigured.
func ResolveAPIKey(configured string, loaded map[string]string, getenv func(string) string) string {
	if key := strings.TrimSpace(configured); key != "" {
		return key
	}
	if key := loaded[OpenAIKeyFile]; key != "" {
		return key
	}
	if getenv == nil {
		return ""
	}
	return strings.TrimSpace(getenv(OpenAIKeyEnv))
}
