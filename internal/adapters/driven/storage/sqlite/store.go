// Package sqlite provides the SQLite-backed chunk store. Embeddings are
// stored as little-endian float32 blobs; similarity search scores every
// stored vector for the site against the query and returns the top
// matches, most similar first.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sitesage/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store is a SQLite-backed chunk store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a chunk store at the specified data directory.
// If dataDir is empty, defaults to ~/.sitesage/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sitesage", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chunks.db")

	// WAL mode for better concurrency between ingestion and queries
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies any pending .up.sql migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveChunks persists a batch of chunks in one transaction.
func (s *Store) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, site_id, source_url, source_type, content, embedding, timestamp, page_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		var timestamp sql.NullString
		if ts, ok := chunk.Provenance.Timestamp(); ok {
			timestamp = sql.NullString{String: ts, Valid: true}
		}

		var page sql.NullInt64
		if p, ok := chunk.Provenance.Page(); ok {
			page = sql.NullInt64{Int64: int64(p), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.SiteID, chunk.SourceURL,
			string(chunk.Provenance.Type()), chunk.Content,
			float32SliceToBytes(chunk.Embedding), timestamp, page); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SiteStatus reports whether chunks exist for a site and how many.
func (s *Store) SiteStatus(ctx context.Context, siteID string) (*domain.SiteStatus, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE site_id = ?", siteID)
	if err := row.Scan(&count); err != nil {
		return nil, fmt.Errorf("counting site chunks: %w", err)
	}

	return &domain.SiteStatus{
		SiteID:     siteID,
		Exists:     count > 0,
		ChunkCount: count,
	}, nil
}

// SearchSimilar scores every stored chunk for the site against the query
// vector and returns the top limit matches in descending similarity
// order. Vectors are unit-normalised at ingestion, so the score is a
// plain dot product.
func (s *Store) SearchSimilar(ctx context.Context, query []float32, siteID string, limit int) ([]domain.RetrievedChunk, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, site_id, source_url, source_type, content, embedding, timestamp, page_number
		FROM chunks WHERE site_id = ?
	`, siteID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var matches []domain.RetrievedChunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, domain.RetrievedChunk{
			Chunk:      *chunk,
			Similarity: dotProduct(query, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// DeleteSite removes all chunks for a site.
func (s *Store) DeleteSite(ctx context.Context, siteID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE site_id = ?", siteID); err != nil {
		return fmt.Errorf("deleting site chunks: %w", err)
	}
	return nil
}

// scanChunk scans one chunk row, rebuilding its provenance variant.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var sourceType string
	var embedding []byte
	var timestamp sql.NullString
	var page sql.NullInt64

	if err := rows.Scan(&chunk.ID, &chunk.SiteID, &chunk.SourceURL, &sourceType,
		&chunk.Content, &embedding, &timestamp, &page); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embedding)

	switch domain.SourceType(sourceType) {
	case domain.SourceYouTube:
		chunk.Provenance = domain.VideoProvenance(timestamp.String)
	case domain.SourcePDF:
		chunk.Provenance = domain.PDFProvenance(int(page.Int64))
	default:
		chunk.Provenance = domain.WebsiteProvenance()
	}

	return &chunk, nil
}

// dotProduct computes the similarity of two unit vectors.
func dotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
