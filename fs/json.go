// Package fs writes review exports to the local file system.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/akash-new/reviewscout"
)

// AllReviewsFile is the name of the file holding every exported review.
const AllReviewsFile = "all_reviews.json"

// Ensure JSONExporter implements reviewscout.Exporter at compile time.
var _ reviewscout.Exporter = (*JSONExporter)(nil)

// JSONExporter writes reviews as JSON arrays: one file per platform plus
// AllReviewsFile. Each file is written to a temporary name and renamed into
// place, so readers never see a partial file.
type JSONExporter struct {
	dir string
}

// NewJSONExporter creates a JSONExporter that writes into dir.
func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{dir: dir}
}

// PlatformFile returns the file name used for a platform's reviews.
// Example: Course Report → course_report_reviews.json
func PlatformFile(p reviewscout.Platform) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(p))), " ", "_")
	slug = strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, slug)
	return slug + "_reviews.json"
}

// Export writes the per-platform files and AllReviewsFile.
func (e *JSONExporter) Export(ctx context.Context, reviews []*reviewscout.Review) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return err
	}

	var platforms []reviewscout.Platform
	byPlatform := make(map[reviewscout.Platform][]*reviewscout.Review)
	for _, r := range reviews {
		if _, ok := byPlatform[r.Platform]; !ok {
			platforms = append(platforms, r.Platform)
		}
		byPlatform[r.Platform] = append(byPlatform[r.Platform], r)
	}

	for _, p := range platforms {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.write(PlatformFile(p), byPlatform[p]); err != nil {
			return err
		}
	}

	if reviews == nil {
		reviews = []*reviewscout.Review{}
	}
	return e.write(AllReviewsFile, reviews)
}

// write atomically replaces dir/name with reviews encoded as JSON.
func (e *JSONExporter) write(name string, reviews []*reviewscout.Review) error {
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(e.dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(e.dir, name))
}
