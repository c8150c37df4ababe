package rowid

import (
	"testing"

	"github.com/ghuser/barstock/services/inventory/domain/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		id     models.ItemID
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"07", 0, false},
		{"+7", 0, false},
		{" 7", 0, false},
		{"9223372036854775808", 0, false},
		{"550e8400-e29b-41d4-a716-446655440000", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, ok := Parse(tt.id)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Parse(%q) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(42); got != "42" {
		t.Errorf("Format(42) = %q", got)
	}
	if n, ok := Parse(Format(42)); !ok || n != 42 {
		t.Errorf("round trip failed: %d %v", n, ok)
	}
}
