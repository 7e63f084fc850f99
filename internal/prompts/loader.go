// Package prompts serves the chat and resume-builder prompt templates. The
// templates live in embedded JSON files keyed by purpose, and the engine
// resolves all of them once at construction.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// requiredKeys declares the keys each embedded file must carry. A missing key
// is a packaging error, caught by Verify before the engine panics on it.
var requiredKeys = map[string][]string{
	"chat.json": {
		"style_contract", "system", "user", "resume_context",
		"salary_grounding_grounded", "salary_grounding_empty", "salary_clarifier",
	},
	"resume.json": {"style_contract", "system", "builder"},
}

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename (without path, e.g. "chat.json") and key.
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s (have: %s)",
			key, filename, strings.Join(sortedKeys(prompts), ", "))
	}
	return prompt, nil
}

// MustGet retrieves a prompt, panicking if the file or key is missing. Used
// for the prompts the engine requires at construction time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Verify checks that every embedded prompt file carries its required keys.
// Servers call it at startup to fail with an error instead of a later panic.
func Verify() error {
	for filename, keys := range requiredKeys {
		prompts, err := loadFile(filename)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if _, ok := prompts[key]; !ok {
				return fmt.Errorf("prompt file %s is missing required key %q", filename, key)
			}
		}
	}
	return nil
}

// Format replaces placeholders in the form {{.Key}} with values from data.
// Unmatched placeholders are left intact.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// loadFile parses and caches one embedded prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClearCache clears the parsed-file cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}
