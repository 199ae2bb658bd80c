package websearch

import (
	"errors"
	"testing"
)

func TestNewWebSearcher(t *testing.T) {
	if _, err := NewWebSearcher(SerperProvider, "key"); err != nil {
		t.Fatalf("serper: %v", err)
	}
	if _, err := NewWebSearcher(BraveProvider, "key"); err != nil {
		t.Fatalf("brave: %v", err)
	}
	if _, err := NewWebSearcher("bing", "key"); !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}
