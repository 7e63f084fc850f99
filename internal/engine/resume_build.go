package engine

import (
	"context"
	"strings"

	"github.com/nareshchaudhary/career-agent/internal/llm"
	"github.com/nareshchaudhary/career-agent/internal/normalize"
	"github.com/nareshchaudhary/career-agent/internal/prompts"
	"github.com/nareshchaudhary/career-agent/internal/types"
)

// Builder prompt windows, in characters.
const (
	builderResumeChars = 9000
	builderMemoryChars = 4000
)

// BuildResume regenerates a complete ATS-friendly resume draft from the
// uploaded profile and the resume discussion so far. Details absent from the
// profile stay as placeholders; nothing is invented.
func (s *Session) BuildResume(ctx context.Context, query string) types.Response {
	baseResume := s.Profile.Clean
	if len(baseResume) > builderResumeChars {
		baseResume = baseResume[:builderResumeChars]
	}

	userText := prompts.Format(s.eng.resumeBuilderTmpl, map[string]string{
		"Name":   s.Profile.Name,
		"Resume": baseResume,
		"Memory": s.resumeMemory.Tail(builderMemoryChars),
		"Query":  query,
	})

	res := s.eng.driver.Generate(ctx, s.eng.resumeSystemText, userText, llm.Options{
		MaxTokens:        s.eng.cfg.MaxTokens,
		MaxContinuations: s.eng.cfg.MaxContinuations,
		StyleContract:    s.eng.resumeStyleContract,
	})
	s.lastSource = res.Source

	resumeMD := normalize.StripDisclaimers(res.Answer)
	resumeMD = normalize.ForResume(resumeMD)

	answer := strings.Join([]string{
		"Here is your generated resume draft, **" + s.Profile.Name + "**.",
		resumeMD,
		"If you want changes, tell me exactly what to tweak and I will regenerate it. " +
			"You can always click **Resume Builder** again for an updated PDF-ready version.",
	}, "\n\n")

	return types.Response{
		Answer:        answer,
		Sources:       []string{s.source(), "ResumeProfile", "ResumeBuilder"},
		SelectedModel: s.eng.cfg.Provider,
		ResumeBuild: &types.ResumeBuild{
			Name:            s.Profile.Name,
			ContentMarkdown: resumeMD,
		},
	}
}
