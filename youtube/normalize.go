package youtube

import (
	"encoding/json"
	"regexp"
	"strings"
)

// timedTextDocument is the structured timed-text container: an events list
// whose entries hold text segments.
type timedTextDocument struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// cueLinePattern matches numeric cue indices (which also covers timing lines
// since those start with digits), WEBVTT header lines, and stray arrow lines.
var cueLinePattern = regexp.MustCompile(`^(\d+|WEBVTT|-->)`)

// NormalizeSubtitleText converts a raw caption payload into plain text.
// Structured timed-text JSON is tried first; otherwise the input is treated
// as VTT/SRT-like text and stripped line by line. Never fails: total failure
// yields an empty string.
func NormalizeSubtitleText(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	var doc timedTextDocument
	if err := json.Unmarshal([]byte(s), &doc); err == nil {
		var parts []string
		for _, event := range doc.Events {
			for _, seg := range event.Segs {
				if t := strings.TrimSpace(seg.UTF8); t != "" {
					parts = append(parts, t)
				}
			}
		}
		if doc.Events != nil {
			return strings.Join(parts, " ")
		}
	}

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || cueLinePattern.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}
