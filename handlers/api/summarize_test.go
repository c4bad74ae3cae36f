package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/aditya-niranjan/smart-summarizer/config"
	"github.com/aditya-niranjan/smart-summarizer/services/document"
	"github.com/aditya-niranjan/smart-summarizer/services/summary"
	"github.com/aditya-niranjan/smart-summarizer/services/video"
	"github.com/aditya-niranjan/smart-summarizer/validation"
	"github.com/aditya-niranjan/smart-summarizer/youtube"
)

type stubVideoService struct {
	result *video.Result
	err    error
}

func (s *stubVideoService) GetTranscript(ctx context.Context, url string) (*video.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubSummaryService struct {
	output     string
	err        error
	lastText   string
	lastOpts   summary.Options
	configured bool
}

func (s *stubSummaryService) Summarize(ctx context.Context, text string, opts summary.Options) (string, error) {
	s.lastText = text
	s.lastOpts = opts
	return s.output, s.err
}

func (s *stubSummaryService) Configured() bool { return s.configured }
func (s *stubSummaryService) Close() error     { return nil }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestHandler(t *testing.T, videos video.Service, summaries summary.Service) *SummarizeHandler {
	t.Helper()
	return NewSummarizeHandler(
		videos,
		summaries,
		document.NewExtractor(quietLogger()),
		validation.NewValidator(&config.Config{}),
		t.TempDir(),
		quietLogger(),
	)
}

func postForm(handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/summarize/youtube", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestHandleYouTubeSuccess(t *testing.T) {
	videos := &stubVideoService{result: &video.Result{
		VideoID: "abc12345678",
		Text:    "transcript words",
		Source:  youtube.SourceCaptionAPI,
	}}
	summaries := &stubSummaryService{output: "<p>summary</p>"}
	h := newTestHandler(t, videos, summaries)

	rec := postForm(h.HandleYouTube, url.Values{
		"video_url":    {"https://youtu.be/abc12345678"},
		"summary_type": {"short"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["summary"] != "<p>summary</p>" {
		t.Errorf("got summary %v", body["summary"])
	}
	if body["transcript_length"] != float64(len("transcript words")) {
		t.Errorf("got transcript_length %v", body["transcript_length"])
	}
	if body["metadata_only"] != false {
		t.Error("expected metadata_only false")
	}
	if _, ok := body["warning"]; ok {
		t.Error("expected no warning for a real transcript")
	}
}

func TestHandleYouTubeMetadataOnlyWarning(t *testing.T) {
	videos := &stubVideoService{result: &video.Result{
		VideoID:      "abc12345678",
		Text:         "Title: x",
		Source:       youtube.SourceMetadata,
		MetadataOnly: true,
	}}
	h := newTestHandler(t, videos, &stubSummaryService{output: "s"})

	rec := postForm(h.HandleYouTube, url.Values{"video_url": {"https://youtu.be/abc12345678"}})

	body := decodeBody(t, rec)
	if body["metadata_only"] != true {
		t.Error("expected metadata_only true")
	}
	if body["warning"] != metadataOnlyWarning {
		t.Errorf("got warning %v", body["warning"])
	}
}

func TestHandleYouTubeDefaultsSummaryType(t *testing.T) {
	videos := &stubVideoService{result: &video.Result{Text: "t", Source: youtube.SourceCaptionAPI}}
	summaries := &stubSummaryService{output: "s"}
	h := newTestHandler(t, videos, summaries)

	postForm(h.HandleYouTube, url.Values{"video_url": {"https://youtu.be/abc12345678"}})

	if summaries.lastOpts.Type != "short" {
		t.Errorf("got summary type %q, want short default", summaries.lastOpts.Type)
	}
	if summaries.lastOpts.TargetLang != "en" {
		t.Errorf("got target lang %q, want en default", summaries.lastOpts.TargetLang)
	}
}

func TestHandleYouTubeInvalidURL(t *testing.T) {
	h := newTestHandler(t, &stubVideoService{}, &stubSummaryService{})

	rec := postForm(h.HandleYouTube, url.Values{"video_url": {"https://vimeo.com/123"}})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Error("expected success false")
	}
}

func TestHandleYouTubeInvalidSummaryType(t *testing.T) {
	h := newTestHandler(t, &stubVideoService{}, &stubSummaryService{})

	rec := postForm(h.HandleYouTube, url.Values{
		"video_url":    {"https://youtu.be/abc12345678"},
		"summary_type": {"epic"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestHandleYouTubeInvalidBulletCount(t *testing.T) {
	h := newTestHandler(t, &stubVideoService{}, &stubSummaryService{})

	rec := postForm(h.HandleYouTube, url.Values{
		"video_url":    {"https://youtu.be/abc12345678"},
		"bullet_count": {"minus two"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestHandleYouTubePermanentUpstreamError(t *testing.T) {
	videos := &stubVideoService{err: &youtube.UpstreamError{
		Op:   "test",
		Kind: youtube.KindPermanent,
		Err:  errors.New("upstream refused playback: Private video"),
	}}
	h := newTestHandler(t, videos, &stubSummaryService{})

	rec := postForm(h.HandleYouTube, url.Values{"video_url": {"https://youtu.be/abc12345678"}})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400 for a permanent upstream failure", rec.Code)
	}
	body := decodeBody(t, rec)
	errMsg, _ := body["error"].(string)
	if !strings.Contains(errMsg, "private") {
		t.Errorf("expected a friendly message about private videos, got %q", errMsg)
	}
}

func TestHandleYouTubeOversizedBody(t *testing.T) {
	h := newTestHandler(t, &stubVideoService{}, &stubSummaryService{})

	req := httptest.NewRequest(http.MethodPost, "/summarize/youtube", strings.NewReader("video_url=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.ContentLength = 2 << 20
	rec := httptest.NewRecorder()
	h.HandleYouTube(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400 for an oversized body", rec.Code)
	}
}

func TestHandlePDFOversizedBody(t *testing.T) {
	h := newTestHandler(t, &stubVideoService{}, &stubSummaryService{})

	req := httptest.NewRequest(http.MethodPost, "/summarize/pdf", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.ContentLength = maxPDFSize + 1
	rec := httptest.NewRecorder()
	h.HandlePDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400 for an oversized upload", rec.Code)
	}
}

func TestHandlePDFMissingFile(t *testing.T) {
	h := newTestHandler(t, &stubVideoService{}, &stubSummaryService{})

	req := httptest.NewRequest(http.MethodPost, "/summarize/pdf", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	h.HandlePDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}
