// Package classify inspects a raw query and selects the response mode that
// controls length instructions, generation budgets, and the post-generation
// word cap.
package classify

import (
	"regexp"
	"strings"
)

// Modes holds the classification flags for one query. The flags are computed
// in a fixed precedence order; several downstream decisions depend on which
// flag wins, so the order must not be rearranged.
type Modes struct {
	Roadmap    bool
	Analysis   bool
	Broad      bool
	Simple     bool
	Salary     bool
	SalaryOnly bool
}

// Budget is the generation budget attached to a mode: how many output tokens
// the provider may spend, how many continuation round trips are allowed, and
// the word cap enforced after normalization.
type Budget struct {
	MaxTokens         int
	MaxContinuations  int
	MaxWords          int
	LengthInstruction string
}

const simpleWordLimit = 14

var (
	roadmapRe  = regexp.MustCompile(`\b(roadmap|road map|learning path|study plan|learning plan|study|upskill|upgrade|month|months|week|weeks)\b`)
	analysisRe = regexp.MustCompile(`\b(analy(?:ze|sis)|assess(?:ment)?|in depth|deep dive|profile assessment|strengths|gaps|role fit|90\s*[- ]\s*day|action plan)\b`)
	broadRe    = regexp.MustCompile(`\b(resume|cv|profile|skills|experience|role fit|city strategy|action plan|90\s*[- ]\s*day)\b`)
	salaryRe   = regexp.MustCompile(`\b(salary|ctc|package|lpa|inr|compensation|pay)\b`)
	resumeRe   = regexp.MustCompile(`\b(resume|cv|curriculum vitae|profile|my skills|my experience|my background|my career|ats|bullet points|rewrite|reword|role fit|portfolio|cover letter|builder)\b`)
)

var simpleStarters = []string{
	"what is",
	"what's",
	"how much",
	"salary",
	"entry level",
	"tell me salary",
	"give salary",
	"define",
	"who is",
	"which is",
}

// Classify computes the mode flags for a query. profileLoaded reports whether
// resume context is available for this call; analysis mode requires it.
func Classify(query string, profileLoaded bool) Modes {
	q := strings.ToLower(strings.TrimSpace(query))

	var m Modes
	m.Roadmap = roadmapRe.MatchString(q)
	m.Analysis = analysisRe.MatchString(q) && profileLoaded
	m.Broad = m.Roadmap || m.Analysis || broadRe.MatchString(q)
	m.Simple = isSimple(q) && !m.Broad
	m.Salary = salaryRe.MatchString(q)
	m.SalaryOnly = m.Salary && !m.Broad
	return m
}

// IsResumeRelated reports whether a query is about the caller's own resume or
// career materials, which auto-enables profile context when a resume is loaded.
func IsResumeRelated(query string) bool {
	return resumeRe.MatchString(strings.ToLower(query))
}

// IsSalaryQuery reports whether a query carries a financial keyword.
func IsSalaryQuery(query string) bool {
	return salaryRe.MatchString(strings.ToLower(query))
}

func isSimple(q string) bool {
	if q == "" {
		return true
	}
	if len(strings.Fields(q)) <= simpleWordLimit {
		return true
	}
	for _, starter := range simpleStarters {
		if strings.HasPrefix(q, starter) {
			return true
		}
	}
	return false
}

// Limits carries the configured generation ceilings applied over the mode
// table. Zero values leave the table value in place.
type Limits struct {
	MaxTokens            int
	MaxContinuations     int
	MaxTokensFast        int
	MaxContinuationsFast int
	MaxTokensSalary      int
}

// Budget returns the unclamped mode-table budget.
func (m Modes) Budget() Budget {
	return m.BudgetWithin(Limits{})
}

// BudgetWithin returns the generation budget for the winning mode, lowered to
// the configured ceilings: analysis and roadmap respect the full limits,
// simple and default modes the fast limits, and salary-only the salary token
// ceiling.
func (m Modes) BudgetWithin(l Limits) Budget {
	b := m.tableBudget()
	switch {
	case m.Analysis, m.Roadmap:
		b.MaxTokens = capped(b.MaxTokens, l.MaxTokens)
		b.MaxContinuations = capped(b.MaxContinuations, l.MaxContinuations)
	case m.Simple:
		b.MaxTokens = capped(b.MaxTokens, l.MaxTokensFast)
	case m.SalaryOnly:
		b.MaxTokens = capped(b.MaxTokens, l.MaxTokensSalary)
	default:
		b.MaxTokens = capped(b.MaxTokens, l.MaxTokensFast)
		b.MaxContinuations = capped(b.MaxContinuations, l.MaxContinuationsFast)
	}
	return b
}

func capped(table, limit int) int {
	if limit > 0 && limit < table {
		return limit
	}
	return table
}

// tableBudget is the mode budget table. The precedence mirrors Classify:
// analysis and roadmap first, then simple, then salary-only, then the default
// budget.
func (m Modes) tableBudget() Budget {
	switch {
	case m.Analysis:
		return Budget{
			MaxTokens:        900,
			MaxContinuations: 1,
			MaxWords:         1400,
			LengthInstruction: "Answer in 900-1400 words. Keep the resume and observed skills central. Use these sections:\n" +
				"1) Profile snapshot\n2) Strengths\n3) Gaps\n4) Role fit\n5) City strategy\n" +
				"6) Salary band (only numeric if explicitly grounded; otherwise ask clarifiers)\n7) 90-day action plan\n" +
				"Use bullets under each. End with 3 concrete next steps.",
		}
	case m.Roadmap:
		return Budget{
			MaxTokens:        900,
			MaxContinuations: 1,
			MaxWords:         1100,
			LengthInstruction: "Answer in 650-1100 words. Use clear phases (e.g., Month 1-2, 3-4, 5-6), bullets, and a practical weekly routine. " +
				"Include a final section titled `Learning Resources` with at least 6 direct links (official docs + courses + practice).",
		}
	case m.Simple:
		return Budget{
			MaxTokens:         320,
			MaxContinuations:  0,
			MaxWords:          240,
			LengthInstruction: "Answer in 120-220 words max. Use one heading, 3-6 bullets, and one short next-step line.",
		}
	case m.SalaryOnly:
		return Budget{
			MaxTokens:         420,
			MaxContinuations:  0,
			MaxWords:          320,
			LengthInstruction: "Answer in 280-520 words with clean sections and bullets.",
		}
	default:
		return Budget{
			MaxTokens:         650,
			MaxContinuations:  2,
			MaxWords:          700,
			LengthInstruction: "Answer in 280-520 words with clean sections and bullets.",
		}
	}
}
