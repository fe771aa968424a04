package booking

import (
	"testing"
	"time"
)

func TestRentalDays(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int64
	}{
		{"exact single day", base, base.Add(24 * time.Hour), 1},
		{"exact three days", base, base.Add(72 * time.Hour), 3},
		{"partial day rounds up", base, base.Add(25 * time.Hour), 2},
		{"under a day counts as one", base, base.Add(6 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RentalDays(tt.start, tt.end); got != tt.want {
				t.Fatalf("RentalDays(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestParseTargetStatus(t *testing.T) {
	if _, err := ParseTargetStatus("cancelled"); err != nil {
		t.Fatalf("cancelled should be a valid target: %v", err)
	}
	if _, err := ParseTargetStatus("returned"); err != nil {
		t.Fatalf("returned should be a valid target: %v", err)
	}
	if _, err := ParseTargetStatus("active"); err == nil {
		t.Fatalf("active must not be requestable")
	}
	if _, err := ParseTargetStatus("bogus"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestTerminal(t *testing.T) {
	if StatusActive.Terminal() {
		t.Fatalf("active is not terminal")
	}
	if !StatusCancelled.Terminal() || !StatusReturned.Terminal() {
		t.Fatalf("cancelled and returned are terminal")
	}
}
