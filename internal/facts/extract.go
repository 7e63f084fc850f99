// Package facts extracts a conservative allow-list of grounded numeric claims
// from retrieved context and filters generated output against it. A figure is
// allowed only when it is verbatim-traceable to the selected context.
package facts

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Allowed holds the grounded numeric facts for one request, as normalized
// strings. Allowed is the union of the three families.
type Allowed struct {
	SalaryRanges map[string]struct{}
	Percents     map[string]struct{}
	Rents        map[string]struct{}
	Union        map[string]struct{}
}

var (
	// "12-18 LPA", "12 to 18 lakhs"
	salaryRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:-|to)\s*(\d{1,2})\s*(?:lpa|lakhs?)\b`)
	// "INR 30k/month"
	rentRe = regexp.MustCompile(`(?i)\bINR\s*(\d{1,3})\s*k\s*/\s*month\b`)
	// "9%", "9 percent"
	// A \b after the alternation would sit between % and a non-word rune and
	// never match, so the boundary applies to the word form only.
	percentRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:%|percent\b)`)
)

// ExtractAllowed scans the concatenated context chunks for the three grounded
// fact families and returns their normalized allow-list.
func ExtractAllowed(chunks []string) Allowed {
	text := strings.Join(chunks, "\n")
	allowed := Allowed{
		SalaryRanges: make(map[string]struct{}),
		Percents:     make(map[string]struct{}),
		Rents:        make(map[string]struct{}),
		Union:        make(map[string]struct{}),
	}

	for _, m := range salaryRangeRe.FindAllStringSubmatch(text, -1) {
		allowed.SalaryRanges[fmt.Sprintf("%s-%s LPA", m[1], m[2])] = struct{}{}
	}
	for _, m := range rentRe.FindAllStringSubmatch(text, -1) {
		allowed.Rents[fmt.Sprintf("INR %sk/month", m[1])] = struct{}{}
	}
	for _, m := range percentRe.FindAllStringSubmatch(text, -1) {
		allowed.Percents[fmt.Sprintf("%s%%", m[1])] = struct{}{}
	}

	for fact := range allowed.SalaryRanges {
		allowed.Union[fact] = struct{}{}
	}
	for fact := range allowed.Rents {
		allowed.Union[fact] = struct{}{}
	}
	for fact := range allowed.Percents {
		allowed.Union[fact] = struct{}{}
	}
	return allowed
}

// HasSalaryRanges reports whether any salary-range fact was grounded. When
// false, salary-only queries short-circuit to clarifying questions without
// calling the generator.
func (a Allowed) HasSalaryRanges() bool {
	return len(a.SalaryRanges) > 0
}

// SortedUnion returns the allow-list union in stable order for prompt text.
func (a Allowed) SortedUnion() []string {
	out := make([]string, 0, len(a.Union))
	for fact := range a.Union {
		out = append(out, fact)
	}
	sort.Strings(out)
	return out
}
