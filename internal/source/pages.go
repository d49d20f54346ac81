// Package source loads the ordered page-text sequence that feeds a build
// pass. Pages come from a JSON array, a JSONL stream, or a directory of
// per-page text files; page numbers are 1-based and need not be contiguous.
package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound marks a missing source path. A missing source is fatal and
// aborts the build before any processing.
var ErrNotFound = errors.New("source not found")

// Page is one unit of extracted text.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// pageFile matches per-page text files in a source directory.
var pageFile = regexp.MustCompile(`^page-(\d+)\.txt$`)

// furniture matches running headers and footers that survive extraction:
// bare page numbers and "Page N" lines.
var furniture = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`),
	regexp.MustCompile(`^\d+$`),
}

// Load reads pages from path: a directory of page-N.txt files, a .jsonl
// stream of {page, text} objects, or a .json array of the same shape.
// Pages are returned sorted by number with furniture lines stripped;
// pages numbered below 1 and pages left blank after stripping are omitted.
func Load(path string) ([]Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}

	var pages []Page
	switch {
	case info.IsDir():
		pages, err = loadDir(path)
	case strings.HasSuffix(path, ".jsonl"):
		pages, err = loadJSONL(path)
	case strings.HasSuffix(path, ".json"):
		pages, err = loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	out := pages[:0]
	for _, p := range pages {
		if p.Number < 1 {
			continue
		}
		p.Text = stripFurniture(p.Text)
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func loadDir(dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var pages []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageFile.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil || num < 1 {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		pages = append(pages, Page{Number: num, Text: string(data)})
	}
	return pages, nil
}

func loadJSON(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return pages, nil
}

func loadJSONL(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	var pages []Page
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var p Page
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", filepath.Base(path), lineNum, err)
		}
		pages = append(pages, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	return pages, nil
}

// stripFurniture drops running header and footer lines from page text.
func stripFurniture(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
outer:
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, re := range furniture {
			if re.MatchString(trimmed) {
				continue outer
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
