package domain

import "testing"

func TestStatusFrom(t *testing.T) {
	tests := []struct {
		raw  string
		want WorkspaceStatus
	}{
		{"Pending", StatusPending},
		{"Running", StatusRunning},
		{"Failed", StatusFailed},
		{"Terminating", StatusTerminating},

		// Unrecognized values collapse to Unknown instead of failing;
		// the server-side vocabulary may grow.
		{"Evicted", StatusUnknown},
		{"running", StatusUnknown}, // statuses are case-sensitive
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		if got := StatusFrom(tt.raw); got != tt.want {
			t.Errorf("StatusFrom(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
