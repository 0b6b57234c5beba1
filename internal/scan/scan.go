// Package scan implements the read-only audit of background images in the
// exported HTML. Unlike the rewrite path it can afford a structured parser,
// so it walks the DOM with goquery.
package scan

import (
	"regexp"
	"strings"

	"github.com/Corrado-von-Planta/TGV-Website/pkg/rewriter"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/storage"
	"github.com/PuerkitoBio/goquery"
)

const (
	StatusPending  = "pending"  // exporter placeholder, still to migrate
	StatusMigrated = "migrated" // already points at a local file
	StatusOther    = "other"
)

// urlPattern pulls the URL out of a background-image declaration.
var urlPattern = regexp.MustCompile(`background-image:\s*url\(([^)]+)\)`)

// ImageRef is one background-image URL found on a marker-class element.
type ImageRef struct {
	URL    string `json:"url" yaml:"url"`
	Status string `json:"status" yaml:"status"`
}

// FileInventory lists the background images of one HTML file.
type FileInventory struct {
	File   string     `json:"file" yaml:"file"`
	Images []ImageRef `json:"images,omitempty" yaml:"images,omitempty"`
}

// Report is the full inventory plus totals.
type Report struct {
	Files    []FileInventory `json:"files" yaml:"files"`
	Total    int             `json:"total" yaml:"total"`
	Pending  int             `json:"pending" yaml:"pending"`
	Migrated int             `json:"migrated" yaml:"migrated"`
	Other    int             `json:"other" yaml:"other"`
}

// classify buckets a background-image URL.
func classify(url string) string {
	switch {
	case strings.HasPrefix(url, rewriter.UploadsMarker) && strings.HasSuffix(url, ".html"):
		return StatusPending
	case strings.HasPrefix(url, "./"):
		return StatusMigrated
	default:
		return StatusOther
	}
}

// InspectFile parses one HTML file and returns the background-image URLs of
// every element carrying the marker class.
func InspectFile(path string) ([]ImageRef, error) {
	store := &storage.Storage{}
	content, err := store.ReadText(path)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var refs []ImageRef
	doc.Find("." + rewriter.MarkerClass).Each(func(i int, s *goquery.Selection) {
		style, ok := s.Attr("style")
		if !ok {
			return
		}
		m := urlPattern.FindStringSubmatch(style)
		if m == nil {
			return
		}
		url := strings.Trim(m[1], `'" `)
		refs = append(refs, ImageRef{URL: url, Status: classify(url)})
	})
	return refs, nil
}

// Inspect builds the full report over a list of HTML files.
func Inspect(files []string) (*Report, error) {
	report := &Report{}
	for _, file := range files {
		refs, err := InspectFile(file)
		if err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			continue
		}
		report.Files = append(report.Files, FileInventory{File: file, Images: refs})
		for _, ref := range refs {
			report.Total++
			switch ref.Status {
			case StatusPending:
				report.Pending++
			case StatusMigrated:
				report.Migrated++
			default:
				report.Other++
			}
		}
	}
	return report, nil
}
