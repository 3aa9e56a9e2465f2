// Package memory provides an in-process DocumentStore for tests and dry runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.DocumentStore = (*DocumentStore)(nil)
	_ driven.PaperWriter   = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Papers are returned in insertion order.
type DocumentStore struct {
	mu     sync.RWMutex
	order  []string
	papers map[string]domain.Paper
}

// NewDocumentStore creates a store seeded with papers.
func NewDocumentStore(papers ...domain.Paper) *DocumentStore {
	s := &DocumentStore{papers: make(map[string]domain.Paper)}
	for _, p := range papers {
		s.Put(p)
	}
	return s
}

// seedRecord is the JSON shape of a seed file entry.
type seedRecord struct {
	PaperID            string  `json:"paper_id"`
	PDFURL             string  `json:"pdf_url"`
	AIGeneratedSummary *string `json:"ai_generated_summary"`
}

// LoadFile creates a store seeded from a JSON array of paper rows.
func LoadFile(path string) (*DocumentStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	s := NewDocumentStore()
	for _, r := range records {
		s.Put(domain.Paper{ID: r.PaperID, PDFURL: r.PDFURL, Summary: r.AIGeneratedSummary})
	}
	return s, nil
}

// Put inserts or replaces a paper.
func (s *DocumentStore) Put(p domain.Paper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.papers[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.papers[p.ID] = clonePaper(p)
}

// Get returns a copy of the paper with the given ID.
func (s *DocumentStore) Get(id string) (domain.Paper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.papers[id]
	return clonePaper(p), ok
}

// SelectPending returns papers without a summary.
func (s *DocumentStore) SelectPending(ctx context.Context) ([]domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Paper
	for _, id := range s.order {
		if p := s.papers[id]; !p.HasSummary() {
			out = append(out, clonePaper(p))
		}
	}
	return out, nil
}

// SelectByID returns the matching paper, or an empty slice.
func (s *DocumentStore) SelectByID(ctx context.Context, id string) ([]domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.papers[id]
	if !ok {
		return []domain.Paper{}, nil
	}
	return []domain.Paper{clonePaper(p)}, nil
}

// UpdateSummary sets the summary of an existing paper.
func (s *DocumentStore) UpdateSummary(ctx context.Context, id, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.papers[id]
	if !ok {
		return fmt.Errorf("paper %s: %w", id, domain.ErrNotFound)
	}
	p.Summary = &summary
	s.papers[id] = p
	return nil
}

// AddPaper inserts a paper, or refreshes the PDF URL of an existing one.
// An existing summary is kept.
func (s *DocumentStore) AddPaper(ctx context.Context, paper domain.Paper) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(paper.ID) == "" {
		return domain.ErrMissingIdentifier
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.papers[paper.ID]
	if !ok {
		s.order = append(s.order, paper.ID)
		s.papers[paper.ID] = clonePaper(paper)
		return nil
	}
	existing.PDFURL = paper.PDFURL
	s.papers[paper.ID] = existing
	return nil
}

// Close is a no-op.
func (s *DocumentStore) Close() error {
	return nil
}

func clonePaper(p domain.Paper) domain.Paper {
	if p.Summary != nil {
		summary := *p.Summary
		p.Summary = &summary
	}
	return p
}
