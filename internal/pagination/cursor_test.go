package pagination

import (
	"errors"
	"reflect"
	"testing"
)

func TestCursor_RoundTrip(t *testing.T) {
	c := Cursor{Offset: 42}

	decoded, err := Decode(c.Encode())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Offset != 42 {
		t.Errorf("Offset = %d, want 42", decoded.Offset)
	}
}

func TestDecode_EmptyToken(t *testing.T) {
	c, err := Decode("")
	if err != nil {
		t.Fatalf("Decode(\"\") failed: %v", err)
	}
	if c.Offset != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset)
	}
}

func TestDecode_InvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%"},
		{name: "not json", token: "bm90LWpzb24"},
		{name: "negative offset", token: Cursor{Offset: -1}.Encode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.token); !errors.Is(err, ErrInvalidCursor) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidCursor", tt.token, err)
			}
		})
	}
}

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 0, want: DefaultPageSize},
		{in: -5, want: DefaultPageSize},
		{in: 25, want: 25},
		{in: 500, want: MaxPageSize},
	}

	for _, tt := range tests {
		if got := ClampPageSize(tt.in); got != tt.want {
			t.Errorf("ClampPageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	first := Slice(items, Cursor{}, 2)
	if !reflect.DeepEqual(first.Items, []int{1, 2}) {
		t.Fatalf("first page = %v, want [1 2]", first.Items)
	}
	if first.NextCursor == "" {
		t.Fatal("expected next cursor on first page")
	}

	c, err := Decode(first.NextCursor)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	second := Slice(items, c, 2)
	if !reflect.DeepEqual(second.Items, []int{3, 4}) {
		t.Fatalf("second page = %v, want [3 4]", second.Items)
	}

	c, _ = Decode(second.NextCursor)
	last := Slice(items, c, 2)
	if !reflect.DeepEqual(last.Items, []int{5}) {
		t.Fatalf("last page = %v, want [5]", last.Items)
	}
	if last.NextCursor != "" {
		t.Errorf("expected empty next cursor on last page, got %q", last.NextCursor)
	}
}

func TestSlice_OffsetPastEnd(t *testing.T) {
	page := Slice([]int{1, 2}, Cursor{Offset: 10}, 2)
	if len(page.Items) != 0 {
		t.Errorf("expected empty page, got %v", page.Items)
	}
	if page.NextCursor != "" {
		t.Errorf("expected empty next cursor, got %q", page.NextCursor)
	}
}
