package server

import (
	"context"
	"errors"
	"testing"

	"atsblitz/internal/config"
	"atsblitz/internal/observability"
	"atsblitz/internal/types"
)

type stubTitleStore struct {
	known     map[string]*types.StandardizedTitle
	lookupErr error
	observed  []string
}

func (s *stubTitleStore) Lookup(ctx context.Context, title string) (*types.StandardizedTitle, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.known[title], nil
}

func (s *stubTitleStore) RecordObservation(ctx context.Context, title string) error {
	s.observed = append(s.observed, title)
	return nil
}

func TestInstrumentedTitleStoreForwards(t *testing.T) {
	stub := &stubTitleStore{
		known: map[string]*types.StandardizedTitle{
			"sales manager": {OriginalCode: "41-2031", StandardizedTitle: "Sales Manager"},
		},
	}
	proxy := &instrumentedTitleStore{store: stub}

	// Metrics not attached yet; lookups must still work
	known, err := proxy.Lookup(context.Background(), "sales manager")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if known == nil || known.StandardizedTitle != "Sales Manager" {
		t.Errorf("Lookup() = %+v, want forwarded store entry", known)
	}

	if unknown, err := proxy.Lookup(context.Background(), "beekeeper"); err != nil || unknown != nil {
		t.Errorf("Lookup(unknown) = %+v, %v, want nil, nil", unknown, err)
	}

	if err := proxy.RecordObservation(context.Background(), "beekeeper"); err != nil {
		t.Fatalf("RecordObservation() error = %v", err)
	}
	if len(stub.observed) != 1 || stub.observed[0] != "beekeeper" {
		t.Errorf("observed = %v, want [beekeeper]", stub.observed)
	}
}

func TestInstrumentedTitleStoreRecordsLookups(t *testing.T) {
	om, err := observability.NewManager(config.ObservabilityConfig{
		Enabled:     true,
		ServiceName: "atsblitz-test",
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = om.Shutdown(context.Background()) }()

	stub := &stubTitleStore{known: map[string]*types.StandardizedTitle{}}
	proxy := &instrumentedTitleStore{store: stub, metrics: om.GetMetrics()}

	if _, err := proxy.Lookup(context.Background(), "beekeeper"); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	// Failed lookups propagate the error without recording a result
	stub.lookupErr = errors.New("db closed")
	if _, err := proxy.Lookup(context.Background(), "beekeeper"); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestAttachMetrics(t *testing.T) {
	s := testServer(t)
	s.storeProxy = &instrumentedTitleStore{store: &stubTitleStore{}}

	om := testObservability(t)
	s.attachMetrics(om.GetMetrics())

	if s.storeProxy.metrics == nil {
		t.Error("expected metrics attached to store proxy")
	}
}
