package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// pdfHTTPClient bounds one-shot PDF downloads. Website crawling goes
// through the rate-limited fetcher instead.
var pdfHTTPClient = &http.Client{Timeout: 60 * time.Second}

var (
	ingestSiteID string
	ingestJSON   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest content into the knowledge base",
}

var ingestWebsiteCmd = &cobra.Command{
	Use:   "website [url]",
	Short: "Crawl a website and index its pages",
	Long: `Crawls the site starting at the given URL, staying on the same domain,
and indexes the text of each page. If the site was already ingested the
cached index is reused; use recrawl to force a fresh crawl.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestWebsite,
}

var ingestVideoCmd = &cobra.Command{
	Use:   "video [url]",
	Short: "Index a YouTube video transcript",
	Long: `Fetches the video's captions and indexes them with timestamps. When no
captions are available the audio is downloaded and transcribed in the
background; poll the returned job ID with the jobs command.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestVideo,
}

var ingestPDFCmd = &cobra.Command{
	Use:   "pdf [path-or-url]",
	Short: "Index a PDF document",
	Long: `Extracts text from a local PDF file or a PDF URL and indexes it with
page numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestPDF,
}

var recrawlCmd = &cobra.Command{
	Use:   "recrawl [url]",
	Short: "Drop a site's index and crawl it again",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecrawl,
}

func init() {
	ingestVideoCmd.Flags().StringVar(&ingestSiteID, "site", "", "site ID to index into (default: derived)")
	ingestPDFCmd.Flags().StringVar(&ingestSiteID, "site", "", "site ID to index into (default: derived)")
	ingestCmd.PersistentFlags().BoolVar(&ingestJSON, "json", false, "output result as JSON")
	recrawlCmd.Flags().BoolVar(&ingestJSON, "json", false, "output result as JSON")

	ingestCmd.AddCommand(ingestWebsiteCmd)
	ingestCmd.AddCommand(ingestVideoCmd)
	ingestCmd.AddCommand(ingestPDFCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(recrawlCmd)
}

func runRecrawl(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	result, err := ingestService.RecrawlWebsite(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("recrawl failed: %w", err)
	}

	if ingestJSON {
		return outputJSON(cmd, result)
	}
	cmd.Printf("Re-indexed %d chunks from %d pages into site %s.\n",
		result.ChunksIndexed, result.PagesCrawled, result.SiteID)
	return nil
}

func runIngestWebsite(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	result, err := ingestService.IngestWebsite(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("website ingestion failed: %w", err)
	}

	if ingestJSON {
		return outputJSON(cmd, result)
	}
	if result.Cached {
		cmd.Printf("Site %s already indexed (%d chunks). Use recrawl to refresh.\n",
			result.SiteID, result.ChunksIndexed)
		return nil
	}
	cmd.Printf("Indexed %d chunks from %d pages into site %s.\n",
		result.ChunksIndexed, result.PagesCrawled, result.SiteID)
	return nil
}

func runIngestVideo(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	result, err := ingestService.IngestVideo(context.Background(), args[0], ingestSiteID)
	if err != nil {
		return fmt.Errorf("video ingestion failed: %w", err)
	}

	if ingestJSON {
		return outputJSON(cmd, result)
	}
	if result.Accepted {
		cmd.Printf("No captions available, transcribing in the background.\n")
		cmd.Printf("Poll with: sitesage jobs get %s\n", result.JobID)
		return nil
	}
	cmd.Printf("Indexed %d chunks from %d transcript segments into site %s.\n",
		result.ChunksIndexed, result.SegmentsProcessed, result.SiteID)
	return nil
}

func runIngestPDF(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	source := args[0]
	data, sourceURL, err := readPDF(source)
	if err != nil {
		return err
	}

	result, err := ingestService.IngestPDF(context.Background(), data, sourceURL, ingestSiteID)
	if err != nil {
		return fmt.Errorf("pdf ingestion failed: %w", err)
	}

	if ingestJSON {
		return outputJSON(cmd, result)
	}
	cmd.Printf("Indexed %d chunks from %d pages into site %s.\n",
		result.ChunksIndexed, result.PagesProcessed, result.SiteID)
	return nil
}

// readPDF loads the document bytes from a local path or an http(s) URL.
func readPDF(source string) ([]byte, string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := pdfHTTPClient.Get(source)
		if err != nil {
			return nil, "", fmt.Errorf("download pdf: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, "", fmt.Errorf("download pdf: unexpected status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("download pdf: %w", err)
		}
		return data, source, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, "", fmt.Errorf("read pdf: %w", err)
	}
	return data, source, nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
