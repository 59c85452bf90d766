package process

// Notes:
// - Only harmless pids are exercised. Real group termination is covered by the
//   verify integration tests, which launch and close a browser.

import "testing"

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Harmless PIDs
// ---------------------------------------------------------------------------

func TestKillProcessGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pid  int
	}{
		{"zero is ignored", 0},
		{"negative is ignored", -1},
		{"nonexistent pid", 999999999},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			KillProcessGroup(tt.pid)
		})
	}
}
