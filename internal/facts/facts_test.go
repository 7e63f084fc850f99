package facts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAllowed(t *testing.T) {
	chunks := []string{
		"Entry-level devops roles in Bangalore pay 12-18 LPA at product companies.",
		"Senior roles reach 25 to 35 lakhs. Annual increments average 9 percent.",
		"Typical single-bedroom rent near tech parks is INR 30k/month.",
	}

	allowed := ExtractAllowed(chunks)

	assert.Contains(t, allowed.SalaryRanges, "12-18 LPA")
	assert.Contains(t, allowed.SalaryRanges, "25-35 LPA")
	assert.Contains(t, allowed.Percents, "9%")
	assert.Contains(t, allowed.Rents, "INR 30k/month")
	assert.True(t, allowed.HasSalaryRanges())

	union := allowed.SortedUnion()
	assert.Len(t, union, 4)
}

func TestExtractAllowedPercentSignForm(t *testing.T) {
	// The literal % form must be grounded the same as the spelled-out form.
	allowed := ExtractAllowed([]string{"Increments average 9% for strong performers, 12% at the top."})

	assert.Contains(t, allowed.Percents, "9%")
	assert.Contains(t, allowed.Percents, "12%")
	assert.Contains(t, allowed.Union, "9%")
}

func TestExtractAllowedEmptyContext(t *testing.T) {
	allowed := ExtractAllowed(nil)
	assert.False(t, allowed.HasSalaryRanges())
	assert.Empty(t, allowed.Union)
}

func TestApplyGuardKeepsAllowedRemovesInvented(t *testing.T) {
	chunks := []string{"Devops pay in Bangalore is 12-18 LPA for 2-3 YOE."}
	allowed := ExtractAllowed(chunks)

	answer := strings.Join([]string{
		"## Salary outlook",
		"- Entry band: 12-18 LPA in Bangalore",
		"- Senior band: 30-40 LPA at GCCs",
		"- Demand stays strong across tiers",
	}, "\n")

	guarded := ApplyGuard(answer, allowed)
	assert.Contains(t, guarded, "12-18 LPA")
	assert.NotContains(t, guarded, "30-40 LPA")
	assert.Contains(t, guarded, "Demand stays strong")
}

func TestApplyGuardRemovesPercentClaims(t *testing.T) {
	allowed := ExtractAllowed([]string{"Hikes average 9 percent, and bands sit near 12-18 LPA."})

	answer := "- Expect a 9% hike on switch\n- Some claim 45% hikes routinely"
	guarded := ApplyGuard(answer, allowed)
	assert.Contains(t, guarded, "9% hike")
	assert.NotContains(t, guarded, "45%")
}

func TestApplyGuardNoGroundedRangesStripsCurrencyLines(t *testing.T) {
	allowed := ExtractAllowed([]string{"General advice about learning paths without figures in this text chunk."})
	require.False(t, allowed.HasSalaryRanges())

	answer := "- Typical CTC is 22 LPA\n- Focus on Kubernetes first"
	guarded := ApplyGuard(answer, allowed)
	assert.NotContains(t, guarded, "22 LPA")
	assert.Contains(t, guarded, "Kubernetes")
}

func TestApplyGuardEmptyResultFallsBack(t *testing.T) {
	allowed := ExtractAllowed(nil)
	guarded := ApplyGuard("- CTC around 22 LPA", allowed)
	assert.Equal(t, GuardFallback, guarded)
}

func TestApplyGuardEmptyAnswer(t *testing.T) {
	assert.Equal(t, "", ApplyGuard("", ExtractAllowed(nil)))
}
