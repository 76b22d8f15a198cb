package testsupport

import (
	"testing"

	"sarpipe/internal/config"
	"sarpipe/internal/jobs"
)

// MustOpenLedger opens a submission ledger for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *jobs.Ledger {
	t.Helper()

	ledger, err := jobs.OpenLedger(cfg)
	if err != nil {
		t.Fatalf("jobs.OpenLedger: %v", err)
	}
	t.Cleanup(func() {
		ledger.Close()
	})
	return ledger
}
