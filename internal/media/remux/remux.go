package remux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Plan describes one remux invocation: copy every stream of Input except
// the excluded indices into Output.
type Plan struct {
	Input   string
	Output  string
	Exclude []int
}

// BuildArgs constructs the complete ffmpeg argument slice for a plan.
// Exclusions are emitted in ascending index order so the command line is
// deterministic for identical plans.
func BuildArgs(binary string, plan Plan) []string {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}

	args := make([]string, 0, 16+2*len(plan.Exclude))
	args = append(args, binary, "-hide_banner", "-nostdin", "-y", "-v", "error")
	args = append(args, "-i", plan.Input)
	args = append(args, "-c", "copy", "-map", "0")

	excluded := append([]int(nil), plan.Exclude...)
	sort.Ints(excluded)
	for _, idx := range excluded {
		args = append(args, "-map", fmt.Sprintf("-0:%d", idx))
	}

	args = append(args, plan.Output)
	return args
}

// CommandLine renders an argument slice as a shell-pasteable string,
// quoting arguments containing whitespace.
func CommandLine(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `\'`) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}

// Execute runs the plan. A non-zero ffmpeg exit is fatal; any partially
// written output file is removed so failures never leave a truncated
// container behind.
func Execute(ctx context.Context, binary string, plan Plan) error {
	if strings.TrimSpace(plan.Input) == "" {
		return errors.New("remux: empty input path")
	}
	if strings.TrimSpace(plan.Output) == "" {
		return errors.New("remux: empty output path")
	}

	args := BuildArgs(binary, plan)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(plan.Output)
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("ffmpeg remux: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg remux: %w", err)
	}
	return nil
}
