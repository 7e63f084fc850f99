// Package types defines the shared data contracts exchanged between the
// engine, the HTTP API, and the CLI.
package types

// Response is the answer contract returned for every query. Answer is always
// a displayable markdown string, even on failure paths.
type Response struct {
	Answer        string           `json:"answer"`
	Sources       []string         `json:"sources"`
	Comparison    *SkillComparison `json:"comparison,omitempty"`
	SelectedModel string           `json:"selected_model,omitempty"`
	ResumeBuild   *ResumeBuild     `json:"resume_builder,omitempty"`
}

// SkillComparison is the strict JSON object returned by the structured
// skill-compare mode. Every extracted skill is verbatim-present in the resume
// text; missing skills never overlap extracted ones.
type SkillComparison struct {
	ExtractedSkills []string            `json:"extracted_skills"`
	MissingSkills   []string            `json:"missing_skills"`
	Recommendations map[string][]string `json:"recommendations"`
}

// ResumeBuild carries the generated resume draft alongside the chat answer.
type ResumeBuild struct {
	Name            string `json:"name"`
	ContentMarkdown string `json:"content_markdown"`
}

// ResumeStatus reports whether a session has a resume profile loaded.
type ResumeStatus struct {
	Uploaded bool   `json:"uploaded"`
	Name     string `json:"name"`
	Message  string `json:"message,omitempty"`
}

// StatusInfo reports engine readiness for the /status endpoint.
type StatusInfo struct {
	LLM      string `json:"llm"`
	Docs     int    `json:"docs"`
	Ready    bool   `json:"ready"`
	Provider string `json:"provider"`
	Source   string `json:"source"`
}
