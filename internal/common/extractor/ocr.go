// internal/common/extractor/ocr.go
package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// extractOCR rasterizes the PDF with pdftoppm and runs tesseract over
// each page image. Used for scanned statements with no text layer.
// Requires pdftoppm (poppler-utils) and tesseract on PATH.
func extractOCR(ctx context.Context, filePath, language string, dpi int) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %w", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %w", err)
	}

	if language == "" {
		language = "spa"
	}
	if dpi <= 0 {
		dpi = 300
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(dpi), "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, imgFile := range imageFiles {
		outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
		// PSM 4: single column of text of variable sizes, works for statements
		cmd := exec.CommandContext(ctx, "tesseract", imgFile, outBase, "-l", language, "--psm", "4")
		if _, err := cmd.CombinedOutput(); err != nil {
			// a single bad page should not sink the document
			continue
		}

		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("ocr produced no text from %d page images", len(imageFiles))
	}
	return pages, nil
}
