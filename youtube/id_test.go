package youtube

import (
	"testing"

	apperrors "github.com/aditya-niranjan/smart-summarizer/errors"
)

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    VideoID
		wantErr bool
	}{
		{
			name: "standard watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with extra parameters",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30s&list=PL123",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "shortened URL",
			url:  "https://youtu.be/abc12345678",
			want: "abc12345678",
		},
		{
			name: "embed URL",
			url:  "https://www.youtube.com/embed/abc12345678",
			want: "abc12345678",
		},
		{
			name: "bare video ID",
			url:  "abc12345678",
			want: "abc12345678",
		},
		{
			name:    "unrelated URL",
			url:     "https://example.com/video",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVideoID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got id %q", got)
				}
				if !apperrors.IsInvalidInput(err) {
					t.Errorf("expected invalid input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
