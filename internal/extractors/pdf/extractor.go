// Package pdf extracts per-page text from PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/logger"
)

// Page is the text of one PDF page. Pages are chunked independently so
// each chunk carries exactly one page number.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the trimmed extracted text. Never empty.
	Text string
}

// ExtractPages extracts text page by page. Pages that fail to parse or
// yield no text are dropped; a malformed page never aborts the document.
func ExtractPages(data []byte) ([]Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var pages []Page
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("Skipping PDF page %d: %v", i, err)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, Page{Number: i, Text: text})
	}

	return pages, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases value and collapses runs of non-alphanumerics into
// single dashes.
func Slugify(value string) string {
	value = nonSlugChars.ReplaceAllString(strings.ToLower(value), "-")
	value = strings.Trim(value, "-")
	if value == "" {
		return "pdf"
	}
	return value
}

// DeriveSiteID builds a default site identifier from the source URL's
// host, falling back to the last path element (the filename) for
// uploads.
func DeriveSiteID(sourceURL string) string {
	base := sourceURL
	if parsed, err := url.Parse(sourceURL); err == nil {
		if parsed.Host != "" {
			base = parsed.Host
		} else if parts := strings.Split(parsed.Path, "/"); len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	return "pdf-" + Slugify(base)
}
