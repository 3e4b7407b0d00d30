package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPlaced, StatusConfirmed, true},
		{StatusPlaced, StatusRejected, true},
		{StatusPlaced, StatusCancelled, true},
		{StatusPlaced, StatusDispatched, false},
		{StatusConfirmed, StatusInProcess, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusInProcess, StatusDispatched, true},
		{StatusInProcess, StatusCancelled, false},
		{StatusDispatched, StatusDelivered, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusCompleted, StatusPlaced, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusCancelled, StatusPlaced, false},
		// No self-loops anywhere.
		{StatusPlaced, StatusPlaced, false},
		{StatusConfirmed, StatusConfirmed, false},
		// Unknown statuses never transition.
		{"shipped", StatusDelivered, false},
		{StatusPlaced, "shipped", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := map[string]bool{
		StatusCompleted: true,
		StatusRejected:  true,
		StatusCancelled: true,
	}

	for _, status := range AllowedStatuses {
		if got := IsTerminalStatus(status); got != terminal[status] {
			t.Errorf("IsTerminalStatus(%q) = %v, want %v", status, got, terminal[status])
		}
	}

	if IsTerminalStatus("shipped") {
		t.Error("IsTerminalStatus should be false for unknown statuses")
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range AllowedStatuses {
		if !IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = false, want true", status)
		}
	}

	for _, status := range []string{"", "shipped", "PLACED", "done"} {
		if IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = true, want false", status)
		}
	}
}

func TestNextStatuses(t *testing.T) {
	next := NextStatuses(StatusPlaced)
	if len(next) != 3 {
		t.Fatalf("NextStatuses(placed) returned %d statuses, want 3", len(next))
	}

	if len(NextStatuses(StatusCompleted)) != 0 {
		t.Error("NextStatuses(completed) should be empty")
	}
	if len(NextStatuses("shipped")) != 0 {
		t.Error("NextStatuses of an unknown status should be empty")
	}
}
