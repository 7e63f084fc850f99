package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChatPrompts(t *testing.T) {
	ClearCache()

	for _, key := range []string{
		"style_contract", "system", "user", "resume_context",
		"salary_grounding_grounded", "salary_grounding_empty", "salary_clarifier",
	} {
		text, err := Get("chat.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, text, key)
	}
}

func TestGetResumePrompts(t *testing.T) {
	for _, key := range []string{"style_contract", "system", "builder"} {
		text, err := Get("resume.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, text, key)
	}
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("chat.json", "does_not_exist")
	require.Error(t, err)
	// The error names the keys that do exist, for fast packaging diagnosis.
	assert.Contains(t, err.Error(), "salary_clarifier")

	_, err = Get("nope.json", "system")
	assert.Error(t, err)
}

func TestVerifyEmbeddedFiles(t *testing.T) {
	ClearCache()
	assert.NoError(t, Verify())
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, ask: {{.Query}}", map[string]string{
		"Name":  "Priya",
		"Query": "salary bands",
	})
	assert.Equal(t, "Hello Priya, ask: salary bands", out)
}

func TestSystemPromptHasGroundingRules(t *testing.T) {
	system := MustGet("chat.json", "system")
	assert.Contains(t, system, "untrusted reference text")
	assert.Contains(t, system, "{{.LengthInstruction}}")
}
