package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/nareshchaudhary/career-agent/internal/classify"
	"github.com/nareshchaudhary/career-agent/internal/facts"
	"github.com/nareshchaudhary/career-agent/internal/kb"
	"github.com/nareshchaudhary/career-agent/internal/llm"
	"github.com/nareshchaudhary/career-agent/internal/normalize"
	"github.com/nareshchaudhary/career-agent/internal/prompts"
	"github.com/nareshchaudhary/career-agent/internal/safety"
	"github.com/nareshchaudhary/career-agent/internal/skills"
	"github.com/nareshchaudhary/career-agent/internal/types"
)

// Prompt context windows, in characters.
const (
	resumePromptChars     = 8000
	resumeMemoryChars     = 3500
	conversationTailChars = 5000
)

const resumeBuilderCTA = "For a polished CV based on this discussion, click **Resume Builder**."

var answerLinkRe = regexp.MustCompile(`(?i)\[[^\]]+\]\(https?://[^\s)]+\)`)

// Ask answers a free-form career question through the full pipeline. It
// never returns an error: failure paths produce displayable answer text.
func (s *Session) Ask(ctx context.Context, query string, useProfile bool) types.Response {
	if strings.TrimSpace(query) == "" {
		return types.Response{Answer: "Please enter a query.", Sources: []string{}}
	}

	if safety.IsPromptExfiltration(query) {
		return types.Response{
			Answer:        safety.RefusalMessage,
			Sources:       []string{"SafetyPolicy"},
			SelectedModel: s.eng.cfg.Provider,
		}
	}

	contextChunks := kb.Select(query, s.eng.chunks, kb.DefaultMaxChunks)
	var contextLines []string
	for _, chunk := range contextChunks {
		contextLines = append(contextLines, "- "+chunk)
	}
	contextText := strings.Join(contextLines, "\n\n")

	profileActive := useProfile && s.Profile.Uploaded && s.Profile.Clean != ""
	modes := classify.Classify(query, profileActive)
	budget := modes.BudgetWithin(classify.Limits{
		MaxTokens:            s.eng.cfg.MaxTokens,
		MaxContinuations:     s.eng.cfg.MaxContinuations,
		MaxTokensFast:        s.eng.cfg.MaxTokensFast,
		MaxContinuationsFast: s.eng.cfg.MaxContinuationsFast,
		MaxTokensSalary:      s.eng.cfg.MaxTokensSalary,
	})

	resumeContext := ""
	if profileActive {
		resumeContext = s.buildResumeContext()
	}

	var allowed facts.Allowed
	salaryGrounding := ""
	if modes.Salary {
		allowed = facts.ExtractAllowed(contextChunks)
		if len(allowed.SalaryRanges) > 0 {
			salaryGrounding = prompts.Format(s.eng.salaryGroundedTmpl, map[string]string{
				"Facts": strings.Join(allowed.SortedUnion(), ", "),
			})
		} else {
			salaryGrounding = s.eng.salaryEmptyText
		}
	}

	// Without grounded ranges a salary-only query short-circuits to
	// clarifying questions instead of letting the model guess.
	if modes.SalaryOnly && len(allowed.SalaryRanges) == 0 {
		return types.Response{
			Answer:        s.eng.salaryClarifier,
			Sources:       []string{s.source(), "LocalKnowledgeBase"},
			SelectedModel: s.eng.cfg.Provider,
		}
	}

	systemText := prompts.Format(s.eng.chatSystemTmpl, map[string]string{
		"LengthInstruction": budget.LengthInstruction,
	})
	userText := prompts.Format(s.eng.chatUserTmpl, map[string]string{
		"Conversation":     s.chatMemory.Tail(conversationTailChars),
		"ResumeContext":    resumeContext,
		"KnowledgeContext": contextText,
		"SalaryGrounding":  salaryGrounding,
		"Query":            strings.TrimSpace(query),
	})

	res := s.eng.driver.Generate(ctx, systemText, userText, llm.Options{
		MaxTokens:        budget.MaxTokens,
		MaxContinuations: budget.MaxContinuations,
		StyleContract:    s.eng.chatStyleContract,
	})
	s.lastSource = res.Source
	answer := res.Answer

	if safety.LooksLikePromptLeak(answer) {
		answer = safety.LeakReplacement
	}

	answer = normalize.ForChat(answer, budget.MaxWords)
	if modes.Roadmap {
		answer = normalize.LearningResourceBlock(answer)
	}
	if modes.Salary {
		answer = facts.ApplyGuard(answer, allowed)
	}
	if modes.Roadmap && (!normalize.HasLearningResources(answer) || !answerLinkRe.MatchString(answer)) {
		answer = strings.TrimSpace(answer + "\n\n" + normalize.RoadmapResources(query))
	}

	s.chatMemory.Append(query, answer)
	if profileActive {
		s.resumeMemory.Append(query, answer)
		answer = answer + "\n\n" + resumeBuilderCTA
	}

	sources := []string{s.source(), "LocalKnowledgeBase"}
	if profileActive {
		sources = append(sources, "ResumeProfile/"+s.Profile.Name)
	}

	return types.Response{
		Answer:        answer,
		Sources:       sources,
		SelectedModel: s.eng.cfg.Provider,
	}
}

// source returns the provider label of the most recent generation, or the
// configured default before any call.
func (s *Session) source() string {
	if s.lastSource != "" {
		return s.lastSource
	}
	return s.eng.defaultSource()
}

// buildResumeContext assembles the untrusted resume block injected into the
// user prompt, including evidence-only observed skills.
func (s *Session) buildResumeContext() string {
	observedBlock := ""
	raw := s.Profile.Raw
	if raw == "" {
		raw = s.Profile.Clean
	}
	if observed := skills.ExtractFromResume(raw); len(observed) > 0 {
		var lines []string
		for _, skill := range observed {
			lines = append(lines, "- "+skill)
		}
		observedBlock = "Observed skills (verbatim from resume text):\n" + strings.Join(lines, "\n") + "\n\n"
	}

	resumeText := s.Profile.Clean
	if len(resumeText) > resumePromptChars {
		resumeText = resumeText[:resumePromptChars]
	}

	return prompts.Format(s.eng.resumeContextTmpl, map[string]string{
		"Name":           s.Profile.Name,
		"Resume":         resumeText,
		"Memory":         s.resumeMemory.Tail(resumeMemoryChars),
		"ObservedSkills": observedBlock,
	})
}
