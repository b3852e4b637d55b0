// Package excelize exports reviews to an Excel workbook.
package excelize

import (
	"context"
	"strings"

	"github.com/akash-new/reviewscout"
	"github.com/xuri/excelize/v2"
)

// Ensure Exporter implements reviewscout.Exporter at compile time.
var _ reviewscout.Exporter = (*Exporter)(nil)

// ratingHeaders are the column titles of rating fields.
var ratingHeaders = map[string]string{
	reviewscout.RatingOverall:       "Overall Experience",
	reviewscout.RatingInstructor:    "Instructor",
	reviewscout.RatingCurriculum:    "Curriculum",
	reviewscout.RatingJobAssistance: "Job Assistance",
}

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// Exporter writes reviews to an .xlsx file with one sheet per platform.
type Exporter struct {
	path string
}

// NewExporter creates an Exporter that writes to path.
func NewExporter(path string) *Exporter {
	return &Exporter{path: path}
}

// Export writes reviews to the workbook, replacing any existing file.
// Sheets follow the order in which platforms first appear in reviews.
func (e *Exporter) Export(ctx context.Context, reviews []*reviewscout.Review) error {
	if len(reviews) == 0 {
		return reviewscout.Errorf(reviewscout.EINVALID, "no reviews to export")
	}

	var platforms []reviewscout.Platform
	byPlatform := make(map[reviewscout.Platform][]*reviewscout.Review)
	for _, r := range reviews {
		if _, ok := byPlatform[r.Platform]; !ok {
			platforms = append(platforms, r.Platform)
		}
		byPlatform[r.Platform] = append(byPlatform[r.Platform], r)
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, p := range platforms {
		if err := ctx.Err(); err != nil {
			return err
		}

		sheet := SheetName(p)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, p, byPlatform[p], header); err != nil {
			return err
		}
	}

	return f.SaveAs(e.path)
}

// Headers returns the column titles of a platform's sheet.
func Headers(p reviewscout.Platform) []string {
	headers := []string{"S.No", "Platform", "Reviewer", "Reviewer Description", "Date"}
	for _, key := range reviewscout.RatingKeys(p) {
		headers = append(headers, ratingHeaders[key]+" Rating")
	}
	return append(headers, "Title", "Content", "Relevant")
}

// Row returns the cell values of review number n (1-based) on its sheet.
func Row(n int, r *reviewscout.Review) []any {
	row := []any{n, string(r.Platform), r.ReviewerName, r.ReviewerDescription, r.ReviewDate}
	for _, key := range reviewscout.RatingKeys(r.Platform) {
		row = append(row, r.Rating(key))
	}
	return append(row, r.ReviewTitle, r.ReviewContent, relevance(r))
}

// SheetName returns a valid sheet name for a platform.
func SheetName(p reviewscout.Platform) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, string(p))
	if name = strings.TrimSpace(name); name == "" {
		name = "Reviews"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

func writeSheet(f *excelize.File, sheet string, p reviewscout.Platform, reviews []*reviewscout.Review, headerStyle int) error {
	headers := Headers(p)
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	content := columnName(len(headers) - 1)
	if err := f.SetColWidth(sheet, content, content, 80); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, r := range reviews {
		row := Row(i+1, r)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// relevance renders a verdict as Yes or No, or blank when unclassified.
func relevance(r *reviewscout.Review) string {
	if r.Relevant == nil {
		return ""
	}
	if *r.Relevant {
		return "Yes"
	}
	return "No"
}

// columnName returns the letter name of a 1-based column.
func columnName(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "A"
	}
	return name
}
