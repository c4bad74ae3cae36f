package youtube

import (
	"regexp"

	apperrors "github.com/aditya-niranjan/smart-summarizer/errors"
)

// VideoID is the 11-character identifier YouTube assigns to a video.
type VideoID string

var videoIDPatterns = []*regexp.Regexp{
	// Canonical watch-URL parameter and path forms.
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?#]|$)`),
	// Shortened-domain form.
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

var bareVideoIDPattern = regexp.MustCompile(`([0-9A-Za-z_-]{11})`)

// ResolveVideoID extracts the video identifier from a URL. Matchers are
// applied in order; first match wins. No match is a client error.
func ResolveVideoID(rawURL string) (VideoID, error) {
	const op = "youtube.ResolveVideoID"

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return VideoID(m[1]), nil
		}
	}
	if m := bareVideoIDPattern.FindStringSubmatch(rawURL); m != nil {
		return VideoID(m[1]), nil
	}

	return "", apperrors.InvalidInput(op, nil, "Invalid YouTube URL.")
}
