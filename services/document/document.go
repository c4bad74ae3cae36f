// Package document extracts plain text from uploaded documents.
package document

import (
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	apperrors "github.com/aditya-niranjan/smart-summarizer/errors"
)

type Extractor struct {
	logger *logrus.Logger
}

func NewExtractor(logger *logrus.Logger) *Extractor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Extractor{logger: logger}
}

// ExtractText reads a PDF file and returns its text, pages joined with
// newlines. Pages that fail to decode are skipped; a file that yields no
// text at all is still a valid (empty) result, the caller decides what an
// empty document means.
func (e *Extractor) ExtractText(path string) (string, error) {
	const op = "DocumentExtractor.ExtractText"

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", apperrors.InvalidInput(op, err, "PDF extraction failed: could not open file")
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.WithError(err).WithField("page", i).Warn("Failed to extract page text")
			continue
		}
		pages = append(pages, text)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}
