package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

var jobsJSON bool

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect background jobs",
}

var jobsGetCmd = &cobra.Command{
	Use:   "get [job-id]",
	Short: "Show a background job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsGet,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List background jobs",
	RunE:  runJobsList,
}

func init() {
	jobsCmd.PersistentFlags().BoolVar(&jobsJSON, "json", false, "output as JSON")
	jobsCmd.AddCommand(jobsGetCmd)
	jobsCmd.AddCommand(jobsListCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsGet(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errors.New("job service not configured")
	}

	job, err := jobService.GetJob(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("job %s not found", args[0])
		}
		return fmt.Errorf("get job failed: %w", err)
	}

	if jobsJSON {
		return outputJSON(cmd, jobToJSON(*job))
	}
	printJob(cmd, *job)
	return nil
}

func runJobsList(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errors.New("job service not configured")
	}

	jobs, err := jobService.ListJobs(context.Background())
	if err != nil {
		return fmt.Errorf("list jobs failed: %w", err)
	}

	if jobsJSON {
		out := make([]jobJSON, len(jobs))
		for i, job := range jobs {
			out[i] = jobToJSON(job)
		}
		return outputJSON(cmd, out)
	}
	if len(jobs) == 0 {
		cmd.Println("No jobs.")
		return nil
	}
	for _, job := range jobs {
		printJob(cmd, job)
		cmd.Println()
	}
	return nil
}

// jobJSON mirrors domain.Job with the snake_case keys the other
// commands use for JSON output.
type jobJSON struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Status    domain.JobStatus  `json:"status"`
	Progress  int               `json:"progress"`
	Meta      map[string]string `json:"meta,omitempty"`
	Result    map[string]string `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func jobToJSON(job domain.Job) jobJSON {
	return jobJSON{
		ID:        job.ID,
		Kind:      job.Kind,
		Status:    job.Status,
		Progress:  job.Progress,
		Meta:      job.Meta,
		Result:    job.Result,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

func printJob(cmd *cobra.Command, job domain.Job) {
	cmd.Printf("Job %s (%s)\n", job.ID, job.Kind)
	cmd.Printf("  Status:   %s (%d%%)\n", job.Status, job.Progress)
	if job.Error != "" {
		cmd.Printf("  Error:    %s\n", job.Error)
	}
	for k, v := range job.Result {
		cmd.Printf("  %s: %s\n", k, v)
	}
	cmd.Printf("  Updated:  %s\n", job.UpdatedAt.Format("2006-01-02 15:04:05"))
}
