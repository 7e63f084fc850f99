package kb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// RefreshLogName is the corpus file recording the last source check. It is a
// regular corpus file, so the refresh history itself becomes retrievable.
const RefreshLogName = "00_refresh_log.md"

// maxProbeBytes bounds how much of a source page is read for the title.
const maxProbeBytes = 120000

// SourceURLs are the upstream references the corpus content is curated from.
var SourceURLs = []string{
	"https://www.nasscom.in/knowledge-center/publications/technology-sector-india-strategic-review-2025",
	"https://www.jll.com/en-in/insights/market-dynamics/india-office.html",
	"https://www.jll.com/en-in/newsroom/office-market-soars-gccs-and-domestic-demand-drive-q2-2025-growth",
	"https://www.jll.com/en-in/newsroom/gccs-drive-record-77-2-mn-sqft-office-leasing-in-india.html",
	"https://www.aon.com/apac/in-the-press/asia-newsroom/2025/salaries-in-india-projected-to-increase-by-nine-percent-in-2026-aon-study",
	"https://www.naukri.com/blog/",
	"https://www.numbeo.com/cost-of-living/in/Bangalore",
	"https://www.numbeo.com/cost-of-living/in/Hyderabad",
	"https://www.numbeo.com/cost-of-living/in/Pune",
	"https://www.numbeo.com/cost-of-living/in/Chennai",
	"https://www.numbeo.com/cost-of-living/in/Gurgaon",
	"https://www.numbeo.com/cost-of-living/in/Noida",
	"https://www.numbeo.com/cost-of-living/in/Mumbai",
}

var (
	titleRe      = regexp.MustCompile(`(?is)<title>(.*?)</title>`)
	titleSpaceRe = regexp.MustCompile(`\s+`)
)

// SourceStatus is the outcome of probing one upstream reference.
type SourceStatus struct {
	URL    string
	OK     bool
	Status string
	Title  string
}

// CheckSources probes each URL and returns statuses in input order. Probe
// failures are reported in the status, never as an error.
func CheckSources(ctx context.Context, client *http.Client, urls []string) []SourceStatus {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	results := make([]SourceStatus, len(urls))
	var g errgroup.Group
	g.SetLimit(4)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = probeSource(ctx, client, url)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func probeSource(ctx context.Context, client *http.Client, url string) SourceStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return SourceStatus{URL: url, Status: "ERROR", Title: err.Error()}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return SourceStatus{URL: url, Status: "ERROR", Title: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	title := "(no title parsed)"
	if m := titleRe.FindSubmatch(body); m != nil {
		if t := strings.TrimSpace(titleSpaceRe.ReplaceAllString(string(m[1]), " ")); t != "" {
			title = t
		}
	}

	return SourceStatus{
		URL:    url,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 400,
		Status: fmt.Sprintf("%d", resp.StatusCode),
		Title:  title,
	}
}

// WriteRefreshLog writes the source-check table into the corpus directory so
// the next Load picks it up.
func WriteRefreshLog(dir string, results []SourceStatus, notes string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Knowledge Base Refresh Log\n\n")
	b.WriteString("Updated at: " + time.Now().Format("2006-01-02 15:04:05") + "\n\n")
	b.WriteString("## Source Check\n\n")
	b.WriteString("| Source | Status | Title/Info |\n")
	b.WriteString("|---|---:|---|\n")
	for _, r := range results {
		statusText := "FAIL (" + r.Status + ")"
		if r.OK {
			statusText = "OK (" + r.Status + ")"
		}
		title := strings.ReplaceAll(r.Title, "|", `\|`)
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.URL, statusText, title)
	}

	if notes = strings.TrimSpace(notes); notes != "" {
		b.WriteString("\n## Notes\n\n" + notes + "\n")
	}

	b.WriteString("\n## Manual Follow-up Checklist\n\n")
	b.WriteString("- Revalidate salary ranges and hike assumptions in `knowledge_base/05_india_it_market_2026.md`.\n")
	b.WriteString("- Revalidate rent/cost signals in `knowledge_base/02_top_it_cities.md`.\n")
	b.WriteString("- Revalidate role demand bullets in `knowledge_base/03_skills_and_roadmaps.md`.\n")
	b.WriteString("- Update snapshot date in edited files.\n")

	return os.WriteFile(filepath.Join(dir, RefreshLogName), []byte(b.String()), 0o644)
}
