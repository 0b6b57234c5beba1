// Package rewriter locates exporter placeholder background images in an
// HTML file and rewrites them to local references.
//
// Matching is deliberately regex-based: the rewrite must preserve every
// byte outside the replaced style values, which rules out a parse/serialize
// round-trip through a structured HTML parser.
package rewriter

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Corrado-von-Planta/TGV-Website/models"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/storage"
)

// MarkerClass identifies section elements the exporter gave a CSS
// background image.
const MarkerClass = "wsite-section-bg-image"

// UploadsMarker is the prefix every placeholder URL starts with.
const UploadsMarker = "_/uploads/"

// pattern captures the full style-attribute value (group 1) and the logical
// image path between url( and .html) (group 2) for marker-class elements.
// The class may appear among other classes in any order.
var pattern = regexp.MustCompile(
	`class="[^"]*` + MarkerClass + `[^"]*"[^>]*?style="([^"]*?background-image:\s*url\((_/uploads/[^)]+?)\.html\)[^"]*?)"`)

// ImageFetcher resolves a logical image path to a local reference.
type ImageFetcher interface {
	Fetch(logicalPath string) models.Download
}

type Rewriter struct {
	fetch  ImageFetcher
	store  *storage.Storage
	logger *slog.Logger
}

func New(fetch ImageFetcher, logger *slog.Logger) *Rewriter {
	return &Rewriter{
		fetch:  fetch,
		store:  &storage.Storage{},
		logger: logger,
	}
}

// FindMatches returns every placeholder match with its style-value span.
func FindMatches(content string) []models.Match {
	idx := pattern.FindAllStringSubmatchIndex(content, -1)
	matches := make([]models.Match, 0, len(idx))
	for _, m := range idx {
		matches = append(matches, models.Match{
			StyleValue: content[m[2]:m[3]],
			StyleStart: m[2],
			StyleEnd:   m[3],
			ImagePath:  content[m[4]:m[5]],
		})
	}
	return matches
}

// Process rewrites one HTML file in place. Each matched placeholder is
// handed to the fetcher; successful downloads become span replacements of
// the captured style value, applied back to front. The file is written
// only when at least one replacement applied. Download failures skip the
// occurrence; only unreadable files, failed writes and a violated edit
// invariant surface as errors.
func (r *Rewriter) Process(path string) (*models.FileResult, error) {
	result := &models.FileResult{File: path}

	original, err := r.store.ReadText(path)
	if err != nil {
		return result, err
	}

	matches := FindMatches(original)
	result.Matches = len(matches)
	if len(matches) == 0 {
		r.logger.Info("no placeholder background images found", "file", path)
		return result, nil
	}

	var pending []models.Replacement
	for _, m := range matches {
		r.logger.Info("found background image", "file", path, "image", m.ImagePath+".html")

		d := r.fetch.Fetch(m.ImagePath)
		if !d.OK {
			r.logger.Warn("no image found for placeholder", "file", path, "image", m.ImagePath)
			result.Missing++
			continue
		}

		oldURL := "url(" + m.ImagePath + ".html)"
		newURL := "url(" + d.LocalRef + ")"
		newStyle := strings.Replace(m.StyleValue, oldURL, newURL, 1)
		pending = append(pending, models.Replacement{
			Start:    m.StyleStart,
			End:      m.StyleEnd,
			NewValue: newStyle,
		})
		result.Downloaded++
		r.logger.Info("will update background image", "file", path, "url", newURL)
	}

	if len(pending) == 0 {
		return result, nil
	}

	content := applyReplacements(original, pending)
	if err := verifyEdits(original, content, pending); err != nil {
		return result, fmt.Errorf("refusing to write %s: %w", path, err)
	}

	if err := r.store.WriteText(path, content); err != nil {
		return result, err
	}
	result.Modified = true
	r.logger.Info("saved modified HTML", "file", path, "urls_modified", len(pending))
	return result, nil
}

// applyReplacements substitutes each span back to front so earlier offsets
// stay valid. Spans arrive in ascending document order.
func applyReplacements(content string, pending []models.Replacement) string {
	for i := len(pending) - 1; i >= 0; i-- {
		p := pending[i]
		content = content[:p.Start] + p.NewValue + content[p.End:]
	}
	return content
}

// verifyEdits checks that original and modified agree everywhere outside
// the replaced spans.
func verifyEdits(original, modified string, pending []models.Replacement) error {
	origPos, modPos := 0, 0
	for i, p := range pending {
		gap := p.Start - origPos
		if original[origPos:p.Start] != modified[modPos:modPos+gap] {
			return fmt.Errorf("unexpected edit before replacement %d", i)
		}
		modPos += gap + len(p.NewValue)
		origPos = p.End
	}
	if original[origPos:] != modified[modPos:] {
		return fmt.Errorf("unexpected edit after the last replacement")
	}
	return nil
}
