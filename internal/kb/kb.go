// Package kb loads the static knowledge corpus and selects context chunks for
// a query by lexical token overlap. Chunks are immutable strings shared
// read-only across all sessions.
package kb

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	// minChunkChars drops fragments too short to carry a usable fact.
	minChunkChars = 80
	// maxChunkChars windows long paragraphs into bounded segments.
	maxChunkChars = 900
)

var (
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// Load reads every *.md file under dir and returns the corpus chunks in
// stable order (files sorted by name, chunks in file order). Files are read
// concurrently; unreadable files are skipped rather than failing the load.
func Load(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &LoadError{Dir: dir, Cause: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	perFile := make([][]string, len(names))
	var mu sync.Mutex

	var g errgroup.Group
	for i, name := range names {
		path := filepath.Join(dir, name)
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil // skip unreadable files, keep the rest of the corpus
			}
			chunks := ChunkText(string(data))
			mu.Lock()
			perFile[i] = chunks
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &LoadError{Dir: dir, Cause: err}
	}

	var corpus []string
	for _, chunks := range perFile {
		corpus = append(corpus, chunks...)
	}
	return corpus, nil
}

// ChunkText splits raw corpus text into normalized chunks of 80-900
// characters. Paragraphs are whitespace-collapsed, then windowed.
func ChunkText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for _, part := range paragraphSplitRe.Split(text, -1) {
		normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(part, " "))
		if len(normalized) < minChunkChars {
			continue
		}
		for i := 0; i < len(normalized); i += maxChunkChars {
			end := i + maxChunkChars
			if end > len(normalized) {
				end = len(normalized)
			}
			segment := strings.TrimSpace(normalized[i:end])
			if len(segment) >= minChunkChars {
				chunks = append(chunks, segment)
			}
		}
	}
	return chunks
}
