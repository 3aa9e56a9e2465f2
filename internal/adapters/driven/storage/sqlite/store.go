package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/papersum/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.PaperWriter   = (*Store)(nil)
)

// DefaultFileName is the database file used when only a directory is known.
const DefaultFileName = "papersum.db"

// Store is a SQLite-backed paper table.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at dbPath.
// If dbPath is empty, defaults to ~/.papersum/data/papersum.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".papersum", "data", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL lets the server read while a batch writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		_ = db.Close()
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

// SelectPending returns papers without a summary, oldest first.
func (s *Store) SelectPending(ctx context.Context) ([]domain.Paper, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT paper_id, pdf_url, ai_generated_summary
		FROM paper
		WHERE ai_generated_summary IS NULL
		ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("selecting pending papers: %w", err)
	}
	return scanPapers(rows)
}

// SelectByID returns the paper with the given ID, or an empty slice.
func (s *Store) SelectByID(ctx context.Context, id string) ([]domain.Paper, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT paper_id, pdf_url, ai_generated_summary
		FROM paper
		WHERE paper_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("selecting paper %s: %w", id, err)
	}
	return scanPapers(rows)
}

// UpdateSummary stores the summary for a paper.
func (s *Store) UpdateSummary(ctx context.Context, id, summary string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE paper SET ai_generated_summary = ?, updated_at = ?
		WHERE paper_id = ?
	`, summary, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("paper %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddPaper inserts a paper, or refreshes the PDF URL of an existing one.
// A summary on the input is stored as-is; nil leaves the paper pending.
func (s *Store) AddPaper(ctx context.Context, paper domain.Paper) error {
	if strings.TrimSpace(paper.ID) == "" {
		return domain.ErrMissingIdentifier
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO paper (paper_id, pdf_url, ai_generated_summary)
		VALUES (?, ?, ?)
		ON CONFLICT(paper_id) DO UPDATE SET
			pdf_url = excluded.pdf_url,
			updated_at = CURRENT_TIMESTAMP
	`, paper.ID, paper.PDFURL, nullString(paper.Summary))
	if err != nil {
		return fmt.Errorf("adding paper %s: %w", paper.ID, err)
	}
	return nil
}

// migrate applies every *.up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func scanPapers(rows *sql.Rows) ([]domain.Paper, error) {
	defer rows.Close()

	papers := []domain.Paper{}
	for rows.Next() {
		var (
			p       domain.Paper
			summary sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.PDFURL, &summary); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if summary.Valid {
			s := summary.String
			p.Summary = &s
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterating papers: %w", err)
	}
	return papers, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
