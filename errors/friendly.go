package errors

import "strings"

// friendlyMessages maps known upstream failure phrases to user-facing
// guidance. Evaluated in order; first match wins.
var friendlyMessages = []struct {
	pattern string
	message string
}{
	{"http error 429", "YouTube is rate-limiting requests. Please wait a few minutes and try again."},
	{"too many requests", "YouTube is rate-limiting requests. Please wait a few minutes and try again."},
	{"sign in", "YouTube detected automated access. This usually resolves itself after a few minutes. Try again shortly, or use a different video."},
	{"bot", "YouTube detected automated access. This usually resolves itself after a few minutes. Try again shortly, or use a different video."},
	{"private video", "This video is private, unavailable, or age-restricted and cannot be accessed."},
	{"unavailable", "This video is private, unavailable, or age-restricted and cannot be accessed."},
	{"all extraction strategies failed", "Unable to access this video. YouTube may be blocking automated requests. Please try again in a few minutes or use a different video."},
}

// FriendlyMessage translates raw upstream error text into a small fixed set
// of user-facing messages. Unrecognized errors pass through unchanged.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, fm := range friendlyMessages {
		if strings.Contains(lower, fm.pattern) {
			return fm.message
		}
	}
	return msg
}
