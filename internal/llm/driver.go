package llm

import (
	"context"
	"strings"

	"github.com/nareshchaudhary/career-agent/internal/normalize"
)

// errPrefix marks an answer string carrying a provider failure. Callers get
// this text instead of an error so there is always something to display.
const errPrefix = "LLM Error: "

// noResponse is returned when a provider answers with empty content.
const noResponse = "No response generated."

// continuationAnchorChars bounds how much of the partial answer is replayed
// to the provider when asking for a continuation.
const continuationAnchorChars = 5000

const continuationInstruction = "Continue exactly from where you stopped. " +
	"Do not repeat prior text. " +
	"If this is the final part, end with " + EndMarker + "."

// Failure signatures that mean the primary provider cannot serve the model
// at all, as opposed to a transient error. Only these trigger the fallback.
var fallbackSignatures = []string{
	"model_not_supported",
	"not supported by any provider",
	"invalid_request_error",
	"bad request",
	"provider",
}

// Options bound one generation call.
type Options struct {
	MaxTokens        int
	MaxContinuations int
	StyleContract    string
}

// Result is a finished generation.
type Result struct {
	Answer string
	Source string
}

// Driver runs the generate/continue/stitch loop over a primary provider with
// a single ordered fallback.
type Driver struct {
	Primary  Provider
	Fallback Provider
}

// IsErrorAnswer reports whether an answer string carries a provider failure.
func IsErrorAnswer(answer string) bool {
	return strings.HasPrefix(answer, errPrefix)
}

// Generate produces a complete answer for the prompt. When the primary
// provider fails with an unavailability signature the same call is retried
// once on the fallback.
func (d *Driver) Generate(ctx context.Context, systemText, userText string, opts Options) Result {
	res := d.generateWith(ctx, d.Primary, systemText, userText, opts)
	if IsErrorAnswer(res.Answer) && d.Fallback != nil && hasFallbackSignature(res.Answer) {
		return d.generateWith(ctx, d.Fallback, systemText, userText, opts)
	}
	return res
}

func hasFallbackSignature(answer string) bool {
	low := strings.ToLower(answer)
	for _, sig := range fallbackSignatures {
		if strings.Contains(low, sig) {
			return true
		}
	}
	return false
}

func (d *Driver) generateWith(ctx context.Context, p Provider, systemText, userText string, opts Options) Result {
	guidedSystem := systemText + "\n\n" +
		opts.StyleContract + "\n" +
		"Important formatting rules:\n" +
		"1) End your final line with exactly " + EndMarker + "\n" +
		"2) If response is long, continue in same structure.\n" +
		"3) Do not leave unfinished bullets, code blocks, or markdown links.\n" +
		"4) Never mention knowledge cutoff, browsing limits, or model limitations.\n"

	base := []Message{
		{Role: RoleSystem, Content: guidedSystem},
		{Role: RoleUser, Content: strings.TrimSpace(userText)},
	}

	full, err := p.Complete(ctx, base, opts.MaxTokens)
	if err != nil {
		return Result{Answer: errPrefix + err.Error(), Source: p.Label()}
	}

	for turns := 0; full != "" && !strings.Contains(full, EndMarker) && turns < opts.MaxContinuations; turns++ {
		anchor := full
		if len(anchor) > continuationAnchorChars {
			anchor = anchor[len(anchor)-continuationAnchorChars:]
		}
		msgs := append(append([]Message(nil), base...),
			Message{Role: RoleAssistant, Content: anchor},
			Message{Role: RoleUser, Content: continuationInstruction},
		)

		cont, err := p.Complete(ctx, msgs, opts.MaxTokens)
		if err != nil || cont == "" {
			break
		}
		full = strings.TrimSpace(full + "\n\n" + cont)
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(full, EndMarker, ""))
	cleaned = normalize.CleanTail(cleaned)
	cleaned = normalize.BalanceMarkdown(cleaned)
	cleaned = normalize.StripDisclaimers(cleaned)
	if cleaned == "" {
		cleaned = noResponse
	}
	return Result{Answer: cleaned, Source: p.Label()}
}
