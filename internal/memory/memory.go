// Package memory keeps append-only rolling conversation transcripts. Each
// transcript holds a single string trimmed to a trailing character budget, so
// the most recent turns always survive.
package memory

import "strings"

// Character budgets. Answers are capped before appending so one long answer
// cannot evict the whole history.
const (
	ChatBudget       = 18000
	ChatAnswerCap    = 2200
	ResumeBudget     = 12000
	ResumeAnswerCap  = 1500
)

// Transcript is a rolling text log of user/assistant turns.
type Transcript struct {
	text      string
	budget    int
	answerCap int
}

// NewChat returns a transcript sized for general conversation memory.
func NewChat() *Transcript {
	return &Transcript{budget: ChatBudget, answerCap: ChatAnswerCap}
}

// NewResume returns a transcript sized for resume-discussion memory.
func NewResume() *Transcript {
	return &Transcript{budget: ResumeBudget, answerCap: ResumeAnswerCap}
}

// Append records one turn. The answer is capped first, then the whole
// transcript is trimmed to its trailing budget.
func (t *Transcript) Append(query, answer string) {
	capped := answer
	if len(capped) > t.answerCap {
		capped = capped[:t.answerCap]
	}
	joined := strings.TrimSpace(t.text + "\n\nUser: " + strings.TrimSpace(query) + "\nAssistant: " + capped)
	if len(joined) > t.budget {
		joined = joined[len(joined)-t.budget:]
	}
	t.text = joined
}

// Tail returns the trailing n characters of the transcript, or the whole
// transcript when it is shorter.
func (t *Transcript) Tail(n int) string {
	if n <= 0 || t.text == "" {
		return ""
	}
	if len(t.text) <= n {
		return t.text
	}
	return t.text[len(t.text)-n:]
}

// Text returns the full transcript.
func (t *Transcript) Text() string { return t.text }

// Len returns the transcript length in characters.
func (t *Transcript) Len() int { return len(t.text) }

// Reset clears the transcript.
func (t *Transcript) Reset() { t.text = "" }
