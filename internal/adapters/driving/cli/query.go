package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
)

var (
	querySiteID string
	queryTopK   int
	queryTypes  []string
	queryJSON   bool
)

var (
	chunkHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	scoreStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Retrieve the most relevant chunks for a question",
	Long: `Embeds the question and returns the stored chunks most similar to it,
with their sources. Results are restricted to one site (--site) and can
be filtered by source type (--types website,youtube,pdf).`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&querySiteID, "site", "", "site ID to query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to return")
	queryCmd.Flags().StringSliceVar(&queryTypes, "types", nil, "restrict to source types (website, youtube, pdf)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	_ = queryCmd.MarkFlagRequired("site")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	types, err := parseSourceTypes(queryTypes)
	if err != nil {
		return err
	}

	result, err := queryService.Query(context.Background(), args[0], driving.QueryOptions{
		SiteID:      querySiteID,
		TopK:        queryTopK,
		SourceTypes: types,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}
	return outputQueryText(cmd, result)
}

func parseSourceTypes(raw []string) ([]domain.SourceType, error) {
	types := make([]domain.SourceType, 0, len(raw))
	for _, r := range raw {
		t := domain.SourceType(strings.ToLower(strings.TrimSpace(r)))
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, r)
		}
		types = append(types, t)
	}
	return types, nil
}

func outputQueryJSON(cmd *cobra.Command, result *driving.QueryResult) error {
	out := struct {
		Chunks  []queryChunkJSON   `json:"chunks"`
		Sources []domain.SourceRef `json:"sources"`
	}{
		Chunks:  make([]queryChunkJSON, len(result.Chunks)),
		Sources: result.Sources,
	}
	for i, c := range result.Chunks {
		out.Chunks[i] = queryChunkJSON{
			Content:    c.Content,
			SourceURL:  c.SourceURL,
			SourceType: c.Provenance.Type(),
			Similarity: c.Similarity,
		}
		if ts, ok := c.Provenance.Timestamp(); ok {
			out.Chunks[i].Timestamp = ts
		}
		if page, ok := c.Provenance.Page(); ok {
			out.Chunks[i].PageNumber = page
		}
	}
	return outputJSON(cmd, out)
}

type queryChunkJSON struct {
	Content    string            `json:"content"`
	SourceURL  string            `json:"source_url"`
	SourceType domain.SourceType `json:"source_type"`
	Timestamp  string            `json:"timestamp,omitempty"`
	PageNumber int               `json:"page_number,omitempty"`
	Similarity float64           `json:"similarity"`
}

func outputQueryText(cmd *cobra.Command, result *driving.QueryResult) error {
	if len(result.Chunks) == 0 {
		cmd.Println("No matching chunks found.")
		return nil
	}

	for i, c := range result.Chunks {
		header := fmt.Sprintf("[%d] %s", i+1, describeSource(c))
		cmd.Println(chunkHeaderStyle.Render(header) + " " + scoreStyle.Render(fmt.Sprintf("(%.3f)", c.Similarity)))
		cmd.Println(indent(c.Content, "    "))
		cmd.Println()
	}

	cmd.Println(chunkHeaderStyle.Render("Sources:"))
	for _, src := range result.Sources {
		cmd.Println(sourceStyle.Render("  " + describeSourceRef(src)))
	}
	return nil
}

func describeSource(c domain.RetrievedChunk) string {
	desc := c.SourceURL
	if ts, ok := c.Provenance.Timestamp(); ok {
		desc += " @ " + ts
	}
	if page, ok := c.Provenance.Page(); ok {
		desc += fmt.Sprintf(" (page %d)", page)
	}
	return desc
}

func describeSourceRef(src domain.SourceRef) string {
	desc := fmt.Sprintf("%s [%s]", src.URL, src.Type)
	if src.Timestamp != "" {
		desc += " @ " + src.Timestamp
	}
	if src.PageNumber > 0 {
		desc += fmt.Sprintf(" (page %d)", src.PageNumber)
	}
	return desc
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
