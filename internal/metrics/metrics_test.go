package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/assets":              "/assets",
		"/assets/123":          "/assets/{id}",
		"/assets/123/":         "/assets/{id}/",
		"/assets/transactions": "/assets/transactions",
		"/settings/theme":      "/settings/theme",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIncTransactions(t *testing.T) {
	before := testutil.ToFloat64(TransactionsRecorded.WithLabelValues("returned"))
	IncTransactions("returned")
	IncTransactions("returned")
	if got := testutil.ToFloat64(TransactionsRecorded.WithLabelValues("returned")); got != before+2 {
		t.Errorf("returned counter = %v, want %v", got, before+2)
	}
}

func TestAddExportedRows(t *testing.T) {
	before := testutil.ToFloat64(ExportedRows.WithLabelValues("users"))
	AddExportedRows("users", 6)
	if got := testutil.ToFloat64(ExportedRows.WithLabelValues("users")); got != before+6 {
		t.Errorf("users export counter = %v, want %v", got, before+6)
	}
}
