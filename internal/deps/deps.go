// Package deps verifies that the external tools ffstrip drives are
// available before any work starts.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"ffstrip/internal/config"
)

// Requirement defines an external binary ffstrip relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements returns the tool requirements for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "ffprobe", Command: cfg.FFprobeBinary(), Description: "media inspection"},
		{Name: "ffmpeg", Command: cfg.FFmpegBinary(), Description: "stream-copy remuxing"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
