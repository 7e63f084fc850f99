package skills

// skillAliases maps canonical skill names to the surface forms accepted as
// evidence. A skill is only reported when one of its aliases appears in the
// resume text, so the lexicon can never introduce an unsupported claim.
var skillAliases = map[string][]string{
	// Core languages
	"python":     {"python"},
	"java":       {"java"},
	"javascript": {"javascript", "js"},
	"typescript": {"typescript", "ts"},
	"c++":        {"c++", "cpp"},
	"c#":         {"c#", "csharp"},
	"go":         {"golang", "go language", " go "},
	// Web/frameworks
	"react":   {"react", "react.js", "reactjs"},
	"node.js": {"node", "node.js", "nodejs"},
	"django":  {"django"},
	"fastapi": {"fastapi"},
	"flask":   {"flask"},
	"spring":  {"spring", "spring boot", "springboot"},
	// Cloud/devops
	"aws":            {"aws", "amazon web services"},
	"azure":          {"azure", "microsoft azure"},
	"gcp":            {"gcp", "google cloud"},
	"docker":         {"docker"},
	"kubernetes":     {"kubernetes", "k8s"},
	"terraform":      {"terraform"},
	"linux":          {"linux", "ubuntu", "debian", "centos"},
	"git":            {"git"},
	"github actions": {"github actions"},
	"ci/cd":          {"ci/cd", "cicd", "ci cd"},
	// Data
	"sql":        {"sql"},
	"postgresql": {"postgres", "postgresql"},
	"mysql":      {"mysql"},
	"mongodb":    {"mongodb", "mongo"},
	"redis":      {"redis"},
	"kafka":      {"kafka"},
	// AI/ML/LLM
	"pytorch":    {"pytorch"},
	"tensorflow": {"tensorflow"},
	"rag":        {"rag", "retrieval augmented generation"},
	"langchain":  {"langchain"},
	"weaviate":   {"weaviate"},
}
