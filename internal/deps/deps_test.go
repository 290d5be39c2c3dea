package deps

import (
	"testing"

	"ffstrip/internal/config"
)

func TestRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFprobe = "/opt/bin/ffprobe"
	reqs := Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/bin/ffprobe" {
		t.Fatalf("unexpected ffprobe command: %q", reqs[0].Command)
	}
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "missing", Command: "definitely-not-a-real-binary-zzz"},
		{Name: "unconfigured", Command: "  "},
	})
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatalf("nonexistent binary reported available")
	}
	if statuses[1].Available || statuses[1].Detail != "command not configured" {
		t.Fatalf("unexpected status for unconfigured command: %+v", statuses[1])
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "sh", Command: "sh"}})
	if !statuses[0].Available {
		t.Skipf("sh not in PATH: %s", statuses[0].Detail)
	}
}
