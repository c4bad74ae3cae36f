package youtube

import "testing"

func TestNormalizeSubtitleText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "timed text json",
			raw:  `{"events":[{"segs":[{"utf8":"Hello"},{"utf8":" world"}]},{"segs":[{"utf8":"again"}]}]}`,
			want: "Hello world again",
		},
		{
			name: "timed text json with empty segments",
			raw:  `{"events":[{"segs":[{"utf8":"  "},{"utf8":"kept"}]}]}`,
			want: "kept",
		},
		{
			name: "timed text json with no events",
			raw:  `{"events":[]}`,
			want: "",
		},
		{
			name: "webvtt",
			raw:  "WEBVTT\n\n00:00:01.000 --> 00:00:04.000\nHello world\n\n00:00:04.000 --> 00:00:06.000\nSecond cue\n",
			want: "Hello world Second cue",
		},
		{
			name: "srt with numeric cue indices",
			raw:  "1\n00:00:01,000 --> 00:00:04,000\nFirst line\n\n2\n00:00:04,000 --> 00:00:06,000\nSecond line\n",
			want: "First line Second line",
		},
		{
			name: "plain text passes through",
			raw:  "just some words\non two lines",
			want: "just some words on two lines",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  "  \n\t\n  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSubtitleText(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
