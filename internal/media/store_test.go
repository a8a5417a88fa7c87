package media

import (
	"context"
	"testing"
)

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	if err := s.Save(context.Background(), &Asset{Key: "images/x.jpg"}); err != nil {
		t.Fatalf("expected no error for nil store, got %v", err)
	}
	assets, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected no error for nil store, got %v", err)
	}
	if len(assets) != 0 {
		t.Fatalf("expected empty listing from nil store, got %d", len(assets))
	}
}
