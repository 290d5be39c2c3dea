package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"ffstrip/internal/catalog"
	"ffstrip/internal/language"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		if detail != "" {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, detail)
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	return Parse(output)
}

// Parse decodes a raw ffprobe JSON payload. Exported so the probe cache can
// rehydrate stored results without re-running ffprobe.
func Parse(output []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// Tracks converts the stream list into catalog descriptors. Absent tags
// become empty strings and missing dispositions false, so downstream
// matching never re-checks for missing keys.
func (r Result) Tracks() []catalog.Track {
	tracks := make([]catalog.Track, 0, len(r.Streams))
	for _, s := range r.Streams {
		tracks = append(tracks, catalog.Track{
			Index:     s.Index,
			Kind:      catalog.ParseKind(s.CodecType),
			Codec:     s.CodecName,
			Language:  language.ExtractFromTags(s.Tags),
			Title:     strings.TrimSpace(s.Tags["title"]),
			Forced:    s.Disposition["forced"] == 1,
			ByteCount: streamByteCount(s.Tags),
		})
	}
	return tracks
}

// streamByteCount reads the mkvmerge statistics tag carrying the stream's
// total payload size. ffprobe reports it as a decimal string; anything
// unparseable counts as zero.
func streamByteCount(tags map[string]string) uint64 {
	for _, key := range []string{"NUMBER_OF_BYTES", "NUMBER_OF_BYTES-eng", "number_of_bytes"} {
		if value, ok := tags[key]; ok {
			if n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}
