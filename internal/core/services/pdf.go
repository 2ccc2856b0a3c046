package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
	"github.com/custodia-labs/sitesage/internal/extractors/pdf"
	"github.com/custodia-labs/sitesage/internal/logger"
)

// IngestPDF extracts per-page text from a PDF, chunks each page and
// indexes the chunks with their page numbers.
func (o *IngestOrchestrator) IngestPDF(ctx context.Context, data []byte, sourceURL, siteID string) (*driving.PDFResult, error) {
	pages, err := o.extractPDF(data)
	if err != nil {
		return nil, fmt.Errorf("extract pdf: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNoExtractableText)
	}

	finalSiteID := siteID
	if finalSiteID == "" {
		finalSiteID = pdf.DeriveSiteID(sourceURL)
	}

	// Page numbers stay aligned with chunk texts so provenance survives
	// the single batch embed.
	var chunkTexts []string
	var pageNumbers []int
	for _, page := range pages {
		for _, text := range o.splitter.Split(page.Text) {
			chunkTexts = append(chunkTexts, text)
			pageNumbers = append(pageNumbers, page.Number)
		}
	}
	if len(chunkTexts) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNoExtractableText)
	}

	chunks, err := o.embedChunks(ctx, chunkTexts, func(i int) domain.Chunk {
		return domain.Chunk{
			SourceURL:  sourceURL,
			SiteID:     finalSiteID,
			Provenance: domain.PDFProvenance(pageNumbers[i]),
		}
	})
	if err != nil {
		return nil, err
	}

	if err := o.store.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("store pdf chunks: %w", err)
	}

	logger.Info("Indexed %d chunks from %d PDF pages into %s", len(chunks), len(pages), finalSiteID)
	return &driving.PDFResult{
		SiteID:         finalSiteID,
		SourceURL:      sourceURL,
		ChunksIndexed:  len(chunks),
		PagesProcessed: len(pages),
	}, nil
}
