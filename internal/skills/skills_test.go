package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromResumeSkillsSection(t *testing.T) {
	resume := "Jane Doe\nSkills: Python, FastAPI, AWS, Docker\nExperience\nBackend engineer at Acme"

	extracted := ExtractFromResume(resume)
	require.NotEmpty(t, extracted)

	lower := make(map[string]bool)
	for _, s := range extracted {
		lower[strings.ToLower(s)] = true
	}
	assert.True(t, lower["python"])
	assert.True(t, lower["fastapi"])
	assert.True(t, lower["aws"])
	assert.True(t, lower["docker"])
}

func TestExtractEvidenceOnly(t *testing.T) {
	resume := "Skills: Python\nBuilt services with Django and deployed on Kubernetes."

	extracted := ExtractFromResume(resume)
	for _, s := range extracted {
		assert.Contains(t, strings.ToLower(resume), strings.ToLower(s),
			"every extracted skill must occur verbatim in the resume text")
	}
}

func TestExtractAliasWholeTokenMatching(t *testing.T) {
	// "js" must not match inside other words.
	extracted := ExtractFromResume("Worked on jsonnet pipelines only")
	for _, s := range extracted {
		assert.NotEqual(t, "js", strings.ToLower(s))
	}

	extracted = ExtractFromResume("Shipped features in js and css")
	found := false
	for _, s := range extracted {
		if strings.EqualFold(s, "js") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtractFromResumeEmpty(t *testing.T) {
	assert.Nil(t, ExtractFromResume(""))
}

func TestExtractFromResumeOversizedSkillsSection(t *testing.T) {
	// A skills section far past any sane length must not break extraction;
	// the alias pass still reports evidenced skills.
	filler := strings.Repeat("Irrelevant Tool Name, ", 80)
	resume := "Skills: Python, Docker, " + filler + "\nExperience\nBackend engineer at Acme"
	require.Greater(t, len(resume), 1500)

	extracted := ExtractFromResume(resume)
	require.NotEmpty(t, extracted)

	lower := make(map[string]bool)
	for _, s := range extracted {
		lower[strings.ToLower(s)] = true
	}
	assert.True(t, lower["python"])
	assert.True(t, lower["docker"])
}

func TestExtractReportsEverySurfaceForm(t *testing.T) {
	extracted := ExtractFromResume("Managed Kubernetes clusters and wrote k8s manifests for deployments.")

	lower := make(map[string]bool)
	for _, s := range extracted {
		lower[strings.ToLower(s)] = true
	}
	assert.True(t, lower["kubernetes"])
	assert.True(t, lower["k8s"])
}

func TestExtractOutputSorted(t *testing.T) {
	extracted := ExtractFromResume("Skills: Terraform, AWS, Docker\nTerraform and AWS and Docker appear above.")
	sorted := append([]string(nil), extracted...)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, strings.ToLower(sorted[i-1]), strings.ToLower(sorted[i]))
	}
}

func TestParseComparePayload(t *testing.T) {
	text := "<<<RESUME_TEXT>>>\nSkills: Python, FastAPI\n<<<TARGET_ROLE>>>\nBackend Engineer\n<<<REQUIRED_SKILLS>>>\nPython, Kubernetes\nFastAPI"

	payload := ParseComparePayload(text)
	require.NotNil(t, payload)
	assert.True(t, payload.Ready())
	assert.Equal(t, "Skills: Python, FastAPI", payload.Resume)
	assert.Equal(t, "Backend Engineer", payload.Role)
	assert.Equal(t, []string{"Python", "Kubernetes", "FastAPI"}, payload.Required)
}

func TestParseComparePayloadAbsent(t *testing.T) {
	assert.Nil(t, ParseComparePayload("just a normal career question"))
	assert.Nil(t, ParseComparePayload(""))
}

func TestBuildComparisonScenario(t *testing.T) {
	resume := "Skills: Python, FastAPI, AWS, Docker"
	required := []string{"Python", "Kubernetes", "FastAPI"}

	cmp := BuildComparison(resume, required)
	require.NotNil(t, cmp)

	assert.Equal(t, []string{"Kubernetes"}, cmp.MissingSkills)
	require.Len(t, cmp.Recommendations, 1)
	urls := cmp.Recommendations["Kubernetes"]
	require.GreaterOrEqual(t, len(urls), 1)
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, "https://"))
	}

	// Missing and extracted never overlap.
	extractedSet := make(map[string]bool)
	for _, s := range cmp.ExtractedSkills {
		extractedSet[strings.ToLower(s)] = true
	}
	for _, m := range cmp.MissingSkills {
		assert.False(t, extractedSet[strings.ToLower(m)])
	}
}

func TestBuildComparisonSubstringEvidence(t *testing.T) {
	// Required skill present in free text but not the skills section still counts.
	cmp := BuildComparison("Skills: Python\nDeployed workloads to Kubernetes clusters.", []string{"Kubernetes"})
	assert.Empty(t, cmp.MissingSkills)
}
