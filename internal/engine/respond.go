package engine

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/nareshchaudhary/career-agent/internal/classify"
	"github.com/nareshchaudhary/career-agent/internal/normalize"
	"github.com/nareshchaudhary/career-agent/internal/schemas"
	"github.com/nareshchaudhary/career-agent/internal/skills"
	"github.com/nareshchaudhary/career-agent/internal/types"
)

var greetingRe = regexp.MustCompile(`\b(hello|hi|hey)\b`)

var builderPhrases = []string{
	"who build you",
	"who built you",
	"who made you",
	"who created you",
	"your creator",
	"your developer",
}

var introPhrases = []string{
	"who are you",
	"what do you do",
	"introduce",
}

// Respond is the top-level entry for a user message. It routes between the
// structured skill-compare mode, fixed identity and greeting answers, the
// resume builder, and the full Ask pipeline.
func (s *Session) Respond(ctx context.Context, query string, useProfile, resumeBuilder bool) types.Response {
	// Structured skill-compare mode: a pasted template bypasses generation
	// entirely and returns strict JSON in the answer field.
	if payload := skills.ParseComparePayload(query); payload.Ready() {
		return s.skillCompareResponse(payload)
	}

	q := strings.ToLower(query)
	shouldUseProfile := s.Profile.Uploaded && (useProfile || classify.IsResumeRelated(query))

	for _, phrase := range builderPhrases {
		if strings.Contains(q, phrase) {
			return types.Response{
				Answer:  "Naresh Chaudhary built me.",
				Sources: []string{"System Memory"},
			}
		}
	}

	for _, phrase := range introPhrases {
		if strings.Contains(q, phrase) {
			return types.Response{
				Answer: "I am " + s.eng.cfg.AgentName + ", an AI career agent developed by **Naresh Chaudhary**. " +
					"I can help with roadmaps, resume guidance, and skill upgrade suggestions.",
				Sources: []string{"System Memory"},
			}
		}
	}

	if greetingRe.MatchString(q) || strings.Contains(q, "how are you") {
		if s.Profile.Uploaded && s.Profile.Name != "" {
			return types.Response{
				Answer: "Hi " + s.Profile.Name + ". I have your resume context loaded and will keep guidance personalized " +
					"to your profile, skills, and career stage.",
				Sources: []string{"ResumeProfile"},
			}
		}
		return types.Response{
			Answer:  "Hi. I am ready to help with your career goals. What should we work on first?",
			Sources: []string{"General Chat"},
		}
	}

	if resumeBuilder && s.Profile.Uploaded {
		return s.BuildResume(ctx, query)
	}

	return s.Ask(ctx, query, shouldUseProfile)
}

func (s *Session) skillCompareResponse(payload *skills.ComparePayload) types.Response {
	comparison := skills.BuildComparison(payload.Resume, payload.Required)

	doc, err := json.MarshalIndent(comparison, "", "  ")
	if err == nil {
		err = schemas.ValidateSkillComparison(doc)
	}
	if err != nil {
		return types.Response{
			Answer:        "Skill comparison failed validation. Please check the pasted template and try again.",
			Sources:       []string{},
			SelectedModel: s.eng.cfg.Provider,
		}
	}

	return types.Response{
		Answer:        normalize.ASCIIPunct(string(doc)),
		Sources:       []string{},
		Comparison:    comparison,
		SelectedModel: s.eng.cfg.Provider,
	}
}
