package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIPunct(t *testing.T) {
	assert.Equal(t, `"Hi" - 'there'`, ASCIIPunct("“Hi” – ‘there’"))
	assert.Equal(t, "", ASCIIPunct(""))
	assert.Equal(t, "plain text", ASCIIPunct("plain text"))
}

func TestStripCodeFencesDropsInstallCommands(t *testing.T) {
	in := "Before\n```bash\n$ pip install foo\necho hi\n```\nAfter"
	out := StripCodeFences(in)

	assert.NotContains(t, out, "```")
	assert.NotContains(t, out, "pip install")
	assert.Contains(t, out, "echo hi")
	assert.Contains(t, out, "Before")
	assert.Contains(t, out, "After")
}

func TestStripCodeFencesUnbalancedFenceLeftAlone(t *testing.T) {
	// A lone opening fence has no closing pair, so the block regex skips it.
	in := "text\n```\ncode"
	assert.Contains(t, StripCodeFences(in), "```")
}

func TestDedupeParagraphs(t *testing.T) {
	in := "First paragraph here.\n\nSecond one.\n\nFirst   paragraph here!"
	out := DedupeParagraphs(in)

	assert.Equal(t, 1, strings.Count(out, "First"))
	assert.Contains(t, out, "Second one.")
}

func TestReflowInlineMarkers(t *testing.T) {
	out := Reflow("Intro text ## Heading - first item - second item")

	assert.Contains(t, out, "\n\n## Heading")
	assert.Contains(t, out, "\n- first item")
	assert.Contains(t, out, "\n- second item")
}

func TestPromoteStructureLabelsAndActions(t *testing.T) {
	out := PromoteStructure("Next Steps:\nLearn Docker basics\nPractice daily")

	assert.Equal(t, "### Next Steps\n\n- Learn Docker basics\n- Practice daily", out)
}

func TestPromoteStructureLabelValueBullet(t *testing.T) {
	out := PromoteStructure("Why: It pays well and scales with experience.")
	assert.Contains(t, out, "- **Why:** It pays well and scales with experience.")
}

func TestPromoteStructureCityHeading(t *testing.T) {
	out := PromoteStructure("Bangalore\nEntry-Level roles pay 4-7 LPA here.")

	assert.Contains(t, out, "### Bangalore")
	assert.Contains(t, out, "- Entry-Level roles pay 4-7 LPA here.")
}

func TestBalanceMarkdownClosesFence(t *testing.T) {
	out := BalanceMarkdown("text\n```go\ncode")
	assert.Equal(t, 0, strings.Count(out, "```")%2)
}

func TestBalanceMarkdownClosesInlineBacktickAndBrackets(t *testing.T) {
	out := BalanceMarkdown("see `config value")
	assert.Equal(t, 0, strings.Count(out, "`")%2)

	out = BalanceMarkdown("see [the docs and (a note")
	assert.Equal(t, strings.Count(out, "["), strings.Count(out, "]"))
	assert.Equal(t, strings.Count(out, "("), strings.Count(out, ")"))
}

func TestBalanceMarkdownClosesOpenBold(t *testing.T) {
	assert.Equal(t, "This point is **important**", BalanceMarkdown("This point is **important"))
	assert.Equal(t, "Done.", BalanceMarkdown("Done.**"))
}

func TestBalanceMarkdownDropsDanglingHeading(t *testing.T) {
	out := BalanceMarkdown("Para one is complete.\n## Short heading")
	assert.Equal(t, "Para one is complete.", out)
}

func TestBalanceMarkdownKeepsSoleHeadingLine(t *testing.T) {
	// A heading that is the entire text is content, not a dangling tail.
	assert.Equal(t, "## Priya Sharma", BalanceMarkdown("## Priya Sharma"))
}

func TestBalanceMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"text\n```go\ncode",
		"see `config value",
		"see [the docs and (a note",
		"This point is **important",
		"Para one is complete.\n## Short heading",
		"Nothing wrong here.",
		"",
	}
	for _, in := range inputs {
		once := BalanceMarkdown(in)
		twice := BalanceMarkdown(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestCleanTail(t *testing.T) {
	assert.Equal(t, "Answer text", CleanTail("Answer text ***"))
	assert.Equal(t, "Answer", CleanTail("Answer\n---"))
	assert.Equal(t, "", CleanTail("   "))
}

func TestStripDisclaimers(t *testing.T) {
	in := "As an AI language model, I cannot browse.\nReal guidance here."
	assert.Equal(t, "Real guidance here.", StripDisclaimers(in))
}

func TestStripDisclaimersFallbackWhenEmptied(t *testing.T) {
	out := StripDisclaimers("My knowledge cutoff prevents this.")
	assert.Equal(t, "I can help with practical, current-focused guidance using the provided India IT knowledge base.", out)
}

func TestTruncateWordsKeepsWholeParagraphs(t *testing.T) {
	p1 := strings.TrimSpace(strings.Repeat("alpha ", 30))
	p2 := strings.TrimSpace(strings.Repeat("beta ", 40))
	in := p1 + "\n\n" + p2

	// 5 words of budget left for the second paragraph: below the 20-word
	// threshold, so it is dropped whole.
	assert.Equal(t, p1, TruncateWords(in, 35))
}

func TestTruncateWordsPartialParagraphGetsEllipsis(t *testing.T) {
	p1 := strings.TrimSpace(strings.Repeat("alpha ", 30))
	p2 := strings.TrimSpace(strings.Repeat("beta ", 40))
	in := p1 + "\n\n" + p2

	out := TruncateWords(in, 60)
	require.True(t, strings.HasSuffix(out, "..."))

	words := strings.Fields(out)
	assert.LessOrEqual(t, len(words)-1, 60)
}

func TestTruncateWordsUnderCapUntouched(t *testing.T) {
	in := "short answer only"
	assert.Equal(t, in, TruncateWords(in, 100))
	assert.Equal(t, in, TruncateWords(in, 0))
}

func TestForChatWordCap(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 400))
	out := ForChat(long, 240)

	words := strings.Fields(out)
	assert.LessOrEqual(t, len(words), 241)
}

func TestForChatEmpty(t *testing.T) {
	assert.Equal(t, "", ForChat("", 100))
}

func TestLearningResourceBlockRepairs(t *testing.T) {
	in := strings.Join([]string{
		"## Learning Resources",
		"[Coursera",
		"ML Course](https://example.com/ml)",
		"https://roadmap.sh",
		"Check the syllabus first",
	}, "\n")

	out := LearningResourceBlock(in)

	assert.Contains(t, out, "- **[Coursera - ML Course](https://example.com/ml)**")
	assert.Contains(t, out, "- **[Resource](https://roadmap.sh)**")
	assert.Contains(t, out, "- Check the syllabus first")
}

func TestLearningResourceBlockValidLinksNormalized(t *testing.T) {
	in := "## Learning Resources\n- [Kaggle Learn](https://www.kaggle.com/learn)"
	out := LearningResourceBlock(in)
	assert.Contains(t, out, "- **[Kaggle Learn](https://www.kaggle.com/learn)**")
}

func TestLearningResourceBlockLeavesOtherSectionsAlone(t *testing.T) {
	in := "## Overview\nPlain prose stays as is.\n## Learning Resources\nhttps://roadmap.sh\n## Next Steps\nMore prose."
	out := LearningResourceBlock(in)

	assert.Contains(t, out, "Plain prose stays as is.")
	assert.Contains(t, out, "More prose.")
	assert.Contains(t, out, "- **[Resource](https://roadmap.sh)**")
}

func TestRoadmapResources(t *testing.T) {
	out := RoadmapResources("devops roadmap with docker")

	assert.True(t, strings.HasPrefix(out, "## Learning Resources"))
	assert.Contains(t, out, "https://docs.docker.com/get-started/")
	assert.GreaterOrEqual(t, strings.Count(out, "- **["), 6)
	assert.True(t, HasLearningResources(out))
}

func TestRoadmapTrack(t *testing.T) {
	assert.Equal(t, "frontend", RoadmapTrack("react developer roadmap"))
	assert.Equal(t, "data", RoadmapTrack("machine learning path"))
	assert.Equal(t, "cyber", RoadmapTrack("cybersecurity career"))
	assert.Equal(t, "general", RoadmapTrack("how do I grow"))
}
