package shared

import "testing"

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, -1, 10)
	if p.Limit != 50 || p.Offset != 0 {
		t.Fatalf("expected default window, got limit %d offset %d", p.Limit, p.Offset)
	}
	if p.Total != 10 {
		t.Fatalf("expected total 10, got %d", p.Total)
	}
}

func TestNewPaginationHasMore(t *testing.T) {
	if p := NewPagination(10, 0, 25); !p.HasMore {
		t.Fatal("expected more rows past the first window")
	}
	if p := NewPagination(10, 20, 25); p.HasMore {
		t.Fatal("expected final window")
	}
	if p := NewPagination(10, 10, 20); p.HasMore {
		t.Fatal("offset+limit == total leaves no more rows")
	}
}
