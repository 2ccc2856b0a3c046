package domain

// SiteStatus summarises what the store already holds for a site_id.
// It backs the per-site ingestion idempotency check.
type SiteStatus struct {
	// SiteID is the logical source collection identifier.
	SiteID string

	// Exists reports whether any chunks are stored for the site.
	Exists bool

	// ChunkCount is the number of stored chunks for the site.
	ChunkCount int
}
