package source

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// VerifyPDF checks that the supporting PDF exists and returns its page
// count. When maxPage exceeds the count, the mismatch is logged as a
// warning rather than failing the build: page numbering in extracted text
// often runs past the physical page count when front matter is skipped.
func VerifyPDF(path string, maxPage int, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("reading page count for %s: %w", path, err)
	}

	if maxPage > count {
		log.Warn("source pages exceed PDF page count",
			"pdf", path,
			"pdf_pages", count,
			"max_source_page", maxPage,
		)
	}
	return count, nil
}
