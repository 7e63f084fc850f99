// Package engine orchestrates the full answer pipeline: query screening,
// lexical context selection, fact extraction, prompt assembly, generation,
// output repair, grounding guards, and rolling memory. An Engine holds the
// immutable shared state; each caller gets a Session with its own resume
// profile and memory.
package engine

import (
	"context"
	"time"

	"github.com/nareshchaudhary/career-agent/internal/config"
	"github.com/nareshchaudhary/career-agent/internal/kb"
	"github.com/nareshchaudhary/career-agent/internal/llm"
	"github.com/nareshchaudhary/career-agent/internal/memory"
	"github.com/nareshchaudhary/career-agent/internal/prompts"
	"github.com/nareshchaudhary/career-agent/internal/resume"
	"github.com/nareshchaudhary/career-agent/internal/types"
)

// Engine is the shared, read-only core: configuration, knowledge base
// chunks, the generation driver, and preloaded prompt text. Safe for
// concurrent use by any number of Sessions.
type Engine struct {
	cfg    *config.Config
	driver *llm.Driver
	chunks []string

	chatStyleContract   string
	resumeStyleContract string
	chatSystemTmpl      string
	chatUserTmpl        string
	resumeContextTmpl   string
	resumeSystemText    string
	resumeBuilderTmpl   string
	salaryGroundedTmpl  string
	salaryEmptyText     string
	salaryClarifier     string
}

// New builds an Engine from configuration, loading the knowledge base from
// cfg.KBDir and wiring providers according to cfg.Provider. The HuggingFace
// path keeps OpenAI as an ordered fallback when a key is present.
func New(ctx context.Context, cfg *config.Config) (*Engine, error) {
	chunks, err := kb.Load(cfg.KBDir)
	if err != nil {
		return nil, err
	}

	driver, err := buildDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithParts(cfg, driver, chunks), nil
}

// NewWithParts builds an Engine from preconstructed pieces. Used by New and
// by tests that substitute a fake provider.
func NewWithParts(cfg *config.Config, driver *llm.Driver, chunks []string) *Engine {
	return &Engine{
		cfg:    cfg,
		driver: driver,
		chunks: chunks,

		chatStyleContract:   prompts.MustGet("chat.json", "style_contract"),
		resumeStyleContract: prompts.MustGet("resume.json", "style_contract"),
		chatSystemTmpl:      prompts.MustGet("chat.json", "system"),
		chatUserTmpl:        prompts.MustGet("chat.json", "user"),
		resumeContextTmpl:   prompts.MustGet("chat.json", "resume_context"),
		resumeSystemText:    prompts.MustGet("resume.json", "system"),
		resumeBuilderTmpl:   prompts.MustGet("resume.json", "builder"),
		salaryGroundedTmpl:  prompts.MustGet("chat.json", "salary_grounding_grounded"),
		salaryEmptyText:     prompts.MustGet("chat.json", "salary_grounding_empty"),
		salaryClarifier:     prompts.MustGet("chat.json", "salary_clarifier"),
	}
}

func buildDriver(ctx context.Context, cfg *config.Config) (*llm.Driver, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return &llm.Driver{
			Primary: llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature, timeout),
		}, nil
	case config.ProviderGemini:
		gem, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature, timeout)
		if err != nil {
			return nil, err
		}
		return &llm.Driver{Primary: gem}, nil
	default:
		d := &llm.Driver{
			Primary: llm.NewHuggingFace(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel, cfg.Temperature, timeout),
		}
		if cfg.OpenAIAPIKey != "" {
			d.Fallback = llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature, timeout)
		}
		return d, nil
	}
}

// DocCount returns the number of loaded knowledge base chunks.
func (e *Engine) DocCount() int { return len(e.chunks) }

// Connected reports whether the active provider has credentials.
func (e *Engine) Connected() bool {
	switch e.cfg.Provider {
	case config.ProviderOpenAI:
		return e.cfg.OpenAIAPIKey != ""
	case config.ProviderGemini:
		return e.cfg.GeminiAPIKey != ""
	default:
		return e.cfg.HuggingFaceAPIKey != ""
	}
}

// defaultSource is the provider label reported before any generation ran.
func (e *Engine) defaultSource() string {
	switch e.cfg.Provider {
	case config.ProviderOpenAI:
		return "OpenAI/" + e.cfg.OpenAIModel
	case config.ProviderGemini:
		return "Gemini/" + e.cfg.GeminiModel
	default:
		return "HuggingFace/" + e.cfg.HuggingFaceModel
	}
}

// Status reports readiness for health endpoints.
func (e *Engine) Status() types.StatusInfo {
	connected := e.Connected()
	llmState := "Disconnected"
	if connected {
		llmState = "Connected"
	}
	return types.StatusInfo{
		LLM:      llmState,
		Docs:     len(e.chunks),
		Ready:    connected,
		Provider: e.cfg.Provider,
		Source:   e.defaultSource(),
	}
}

// Session carries per-caller mutable state on top of a shared Engine.
// Sessions are not safe for concurrent use; the transport layer serializes
// calls per session.
type Session struct {
	eng *Engine

	Profile      resume.Profile
	chatMemory   *memory.Transcript
	resumeMemory *memory.Transcript
	lastSource   string
}

// NewSession creates a fresh Session sharing the engine's immutable state.
func (e *Engine) NewSession() *Session {
	return &Session{
		eng:          e,
		chatMemory:   memory.NewChat(),
		resumeMemory: memory.NewResume(),
		lastSource:   e.defaultSource(),
	}
}

// SetResume installs resume text into the session profile and resets the
// resume discussion memory.
func (s *Session) SetResume(text, filename string) resume.SetResult {
	res := s.Profile.Set(text, filename)
	if res.Uploaded {
		s.resumeMemory.Reset()
	}
	return res
}

// ClearResume drops the uploaded profile and its discussion memory.
func (s *Session) ClearResume() types.ResumeStatus {
	s.Profile.Clear()
	s.resumeMemory.Reset()
	return types.ResumeStatus{Message: "Resume cleared."}
}

// ResumeStatus reports whether a profile is loaded.
func (s *Session) ResumeStatus() types.ResumeStatus {
	st := types.ResumeStatus{Uploaded: s.Profile.Uploaded}
	if s.Profile.Uploaded {
		st.Name = s.Profile.Name
	}
	return st
}
