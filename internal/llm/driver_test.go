package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	label     string
	responses []string
	err       error
	calls     [][]Message
}

func (f *fakeProvider) Complete(_ context.Context, messages []Message, _ int) (string, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeProvider) Label() string { return f.label }

func TestGenerateMarkerStrippedNoContinuation(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{"Complete answer here. " + EndMarker}}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 3})

	assert.Equal(t, "Complete answer here.", res.Answer)
	assert.Equal(t, "Fake/model", res.Source)
	assert.Len(t, p.calls, 1)
}

func TestGenerateContinuationStitching(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{
		"First part without the marker.",
		"Second part, done. " + EndMarker,
	}}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 3})

	assert.Equal(t, "First part without the marker.\n\nSecond part, done.", res.Answer)
	require.Len(t, p.calls, 2)

	// The continuation call carries the partial answer as an assistant turn
	// followed by the continuation instruction.
	cont := p.calls[1]
	require.Len(t, cont, 4)
	assert.Equal(t, RoleAssistant, cont[2].Role)
	assert.Equal(t, "First part without the marker.", cont[2].Content)
	assert.Equal(t, RoleUser, cont[3].Role)
	assert.Contains(t, cont[3].Content, "Continue exactly from where you stopped")
}

func TestGenerateContinuationBudgetExhausted(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{
		"Part one never finishes.",
		"Part two never finishes.",
		"Part three never finishes.",
		"Part four would not be requested.",
	}}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 2})

	// Initial call plus exactly two continuations, then the best available
	// answer is kept.
	assert.Len(t, p.calls, 3)
	assert.Contains(t, res.Answer, "Part one")
	assert.Contains(t, res.Answer, "Part three")
	assert.NotContains(t, res.Answer, "Part four")
}

func TestGenerateEmptyContinuationStops(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{"Partial answer.", ""}}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 5})

	assert.Equal(t, "Partial answer.", res.Answer)
	assert.Len(t, p.calls, 2)
}

func TestGenerateZeroContinuationBudget(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{"Short answer without marker."}}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 0})

	assert.Equal(t, "Short answer without marker.", res.Answer)
	assert.Len(t, p.calls, 1)
}

func TestGenerateProviderErrorBecomesAnswerString(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", err: errors.New("connection refused")}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 1})

	assert.Equal(t, "LLM Error: connection refused", res.Answer)
	assert.True(t, IsErrorAnswer(res.Answer))
}

func TestGenerateFallbackOnUnavailabilitySignature(t *testing.T) {
	primary := &fakeProvider{label: "HuggingFace/m", err: errors.New("model_not_supported: m")}
	fallback := &fakeProvider{label: "OpenAI/gpt", responses: []string{"Fallback answer. " + EndMarker}}
	d := &Driver{Primary: primary, Fallback: fallback}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 1})

	assert.Equal(t, "Fallback answer.", res.Answer)
	assert.Equal(t, "OpenAI/gpt", res.Source)
	assert.Len(t, fallback.calls, 1)
}

func TestGenerateNoFallbackOnOtherErrors(t *testing.T) {
	primary := &fakeProvider{label: "HuggingFace/m", err: errors.New("deadline exceeded")}
	fallback := &fakeProvider{label: "OpenAI/gpt", responses: []string{"should not run"}}
	d := &Driver{Primary: primary, Fallback: fallback}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 1})

	assert.Equal(t, "LLM Error: deadline exceeded", res.Answer)
	assert.Empty(t, fallback.calls)
}

func TestGenerateStripsDisclaimerLines(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{
		"As an AI language model, I have limits.\nReal advice follows here. " + EndMarker,
	}}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 1})

	assert.Equal(t, "Real advice follows here.", res.Answer)
}

func TestGenerateEmptyResponse(t *testing.T) {
	p := &fakeProvider{label: "Fake/model"}
	d := &Driver{Primary: p}

	res := d.Generate(context.Background(), "system", "user", Options{MaxTokens: 100, MaxContinuations: 1})

	assert.Equal(t, "No response generated.", res.Answer)
}

func TestGuidedSystemCarriesFormattingRules(t *testing.T) {
	p := &fakeProvider{label: "Fake/model", responses: []string{"ok " + EndMarker}}
	d := &Driver{Primary: p}

	d.Generate(context.Background(), "base system text", "user", Options{
		MaxTokens:        50,
		MaxContinuations: 0,
		StyleContract:    "Write tight, structured answers.",
	})

	require.Len(t, p.calls, 1)
	system := p.calls[0][0]
	assert.Equal(t, RoleSystem, system.Role)
	assert.Contains(t, system.Content, "base system text")
	assert.Contains(t, system.Content, "Write tight, structured answers.")
	assert.Contains(t, system.Content, EndMarker)
	assert.Contains(t, system.Content, "Never mention knowledge cutoff")
}
