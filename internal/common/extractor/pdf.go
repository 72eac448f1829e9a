// internal/common/extractor/pdf.go
package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractNative reads the PDF text layer page by page. Rows are rebuilt
// from positioned text fragments so that table columns stay on one line.
func extractNative(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, renderPage(page))
	}
	return pages, nil
}

// renderPage groups positioned text fragments into visual rows. Fragments
// whose Y coordinates differ by less than rowTolerance belong to the same
// row; within a row they are ordered left to right.
func renderPage(page pdf.Page) string {
	const rowTolerance = 2.0

	texts := page.Content().Text
	if len(texts) == 0 {
		return ""
	}

	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y // PDF Y grows upward
		}
		return texts[i].X < texts[j].X
	})

	var b strings.Builder
	lastY := texts[0].Y
	lastX := 0.0
	for i, t := range texts {
		if i > 0 {
			if lastY-t.Y > rowTolerance {
				b.WriteByte('\n')
				lastX = 0
			} else if t.X-lastX > 1.0 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastY = t.Y
		lastX = t.X + t.W
	}
	return b.String()
}
