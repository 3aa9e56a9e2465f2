package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// Aggregate joins chunk summaries with a single space in position order.
// Failed chunks contribute their empty placeholder; skipped chunks contribute
// nothing. The joined text is not re-summarised.
func Aggregate(results []domain.ChunkResult) string {
	ordered := slices.Clone(results)
	slices.SortStableFunc(ordered, func(a, b domain.ChunkResult) int {
		return a.Position - b.Position
	})

	parts := make([]string, 0, len(ordered))
	for _, r := range ordered {
		if r.Status == domain.ChunkSkipped {
			continue
		}
		parts = append(parts, r.Summary)
	}
	return strings.Join(parts, " ")
}
