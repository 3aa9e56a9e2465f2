// Package postgres provides a DocumentStore over an existing Postgres paper
// table, such as one hosted by Supabase.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.PaperWriter   = (*Store)(nil)
)

// DefaultTable is the table holding papers.
const DefaultTable = "paper"

// Store reads and writes the paper table through a connection pool.
// The table is owned elsewhere; papersum never creates or migrates it.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// NewStore connects to Postgres and checks the connection.
func NewStore(ctx context.Context, dsn, table string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres DSN is required")
	}
	if table == "" {
		table = DefaultTable
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach Postgres: %w", err)
	}

	return &Store{pool: pool, table: quoteTable(table)}, nil
}

// SelectPending returns papers whose summary is NULL.
func (s *Store) SelectPending(ctx context.Context) ([]domain.Paper, error) {
	query := fmt.Sprintf(`SELECT paper_id::text, pdf_url, ai_generated_summary
		FROM %s WHERE ai_generated_summary IS NULL`, s.table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting pending papers: %w", err)
	}
	return collectPapers(rows)
}

// SelectByID returns the matching paper, or an empty slice.
func (s *Store) SelectByID(ctx context.Context, id string) ([]domain.Paper, error) {
	query := fmt.Sprintf(`SELECT paper_id::text, pdf_url, ai_generated_summary
		FROM %s WHERE paper_id::text = $1`, s.table)
	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("selecting paper %s: %w", id, err)
	}
	return collectPapers(rows)
}

// UpdateSummary writes ai_generated_summary for one paper.
func (s *Store) UpdateSummary(ctx context.Context, id, summary string) error {
	query := fmt.Sprintf(`UPDATE %s SET ai_generated_summary = $1 WHERE paper_id::text = $2`, s.table)
	tag, err := s.pool.Exec(ctx, query, summary, id)
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("paper %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddPaper inserts a paper, or refreshes the PDF URL of an existing one.
// paper_id needs a unique constraint for the upsert.
func (s *Store) AddPaper(ctx context.Context, paper domain.Paper) error {
	if strings.TrimSpace(paper.ID) == "" {
		return domain.ErrMissingIdentifier
	}
	query := fmt.Sprintf(`INSERT INTO %s (paper_id, pdf_url, ai_generated_summary)
		VALUES ($1, $2, $3)
		ON CONFLICT (paper_id) DO UPDATE SET pdf_url = EXCLUDED.pdf_url`, s.table)
	if _, err := s.pool.Exec(ctx, query, paper.ID, paper.PDFURL, paper.Summary); err != nil {
		return fmt.Errorf("adding paper %s: %w", paper.ID, err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// paperRow is scanned by column position.
type paperRow struct {
	ID      string
	PDFURL  string
	Summary *string
}

func collectPapers(rows pgx.Rows) ([]domain.Paper, error) {
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[paperRow])
	if err != nil {
		return nil, fmt.Errorf("scanning papers: %w", err)
	}
	papers := make([]domain.Paper, 0, len(records))
	for _, r := range records {
		papers = append(papers, domain.Paper{ID: r.ID, PDFURL: r.PDFURL, Summary: r.Summary})
	}
	return papers, nil
}

// quoteTable quotes a possibly schema-qualified table name.
func quoteTable(name string) string {
	return pgx.Identifier(strings.SplitN(name, ".", 2)).Sanitize()
}
