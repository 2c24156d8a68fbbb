package server

import (
	"context"

	"atsblitz/internal/analyzer"
	"atsblitz/internal/observability"
	"atsblitz/internal/types"
)

// instrumentedTitleStore decorates a title store with lookup metrics. The
// metrics pointer is attached once observability is initialized at startup;
// until then the recorders are no-ops.
type instrumentedTitleStore struct {
	store   analyzer.TitleStore
	metrics *observability.Metrics
}

var _ analyzer.TitleStore = (*instrumentedTitleStore)(nil)

func (s *instrumentedTitleStore) Lookup(ctx context.Context, title string) (*types.StandardizedTitle, error) {
	known, err := s.store.Lookup(ctx, title)
	if err == nil {
		s.metrics.RecordTitleLookup(ctx, known != nil)
	}
	return known, err
}

func (s *instrumentedTitleStore) RecordObservation(ctx context.Context, title string) error {
	return s.store.RecordObservation(ctx, title)
}
