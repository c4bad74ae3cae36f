package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/aditya-niranjan/smart-summarizer/errors"
	"github.com/aditya-niranjan/smart-summarizer/services/document"
	"github.com/aditya-niranjan/smart-summarizer/services/summary"
	"github.com/aditya-niranjan/smart-summarizer/services/video"
	"github.com/aditya-niranjan/smart-summarizer/validation"
)

// maxPDFSize caps uploaded PDF files.
const maxPDFSize = 50 << 20

const metadataOnlyWarning = "This summary is based on video metadata only (no transcript available)"

type SummarizeHandler struct {
	videos    video.Service
	summaries summary.Service
	documents *document.Extractor
	validator *validation.Validator
	tempDir   string
	logger    *logrus.Logger
}

func NewSummarizeHandler(
	videos video.Service,
	summaries summary.Service,
	documents *document.Extractor,
	validator *validation.Validator,
	tempDir string,
	logger *logrus.Logger,
) *SummarizeHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SummarizeHandler{
		videos:    videos,
		summaries: summaries,
		documents: documents,
		validator: validator,
		tempDir:   tempDir,
		logger:    logger,
	}
}

// YouTubeSummaryResponse is the success payload of the YouTube endpoint.
type YouTubeSummaryResponse struct {
	Success          bool   `json:"success"`
	Summary          string `json:"summary"`
	VideoURL         string `json:"video_url"`
	SummaryType      string `json:"summary_type"`
	TranscriptLength int    `json:"transcript_length"`
	MetadataOnly     bool   `json:"metadata_only"`
	Warning          string `json:"warning,omitempty"`
}

// PDFSummaryResponse is the success payload of the PDF endpoint.
type PDFSummaryResponse struct {
	Success     bool   `json:"success"`
	Summary     string `json:"summary"`
	Filename    string `json:"filename"`
	SummaryType string `json:"summary_type"`
	TextLength  int    `json:"text_length"`
}

// HandleYouTube summarizes the transcript of a YouTube video.
func (h *SummarizeHandler) HandleYouTube(w http.ResponseWriter, r *http.Request) {
	const op = "SummarizeHandler.HandleYouTube"

	// Validate request format
	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: 1024 * 1024, // 1MB
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      false,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondError(w, r, apperrors.InvalidInput(op, err, "Invalid form data"))
		return
	}

	videoURL := r.FormValue("video_url")
	opts, err := h.summaryOptions(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.validator.ValidateURL(videoURL); err != nil {
		respondError(w, r, err)
		return
	}

	logger := h.logger.WithFields(logrus.Fields{
		"video_url":    videoURL,
		"summary_type": opts.Type,
	})
	logger.Info("Processing YouTube summarization")

	result, err := h.videos.GetTranscript(r.Context(), videoURL)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summarized, err := h.summaries.Summarize(r.Context(), result.Text, opts)
	if err != nil {
		respondError(w, r, apperrors.Internal(op, err, "Summarization failed"))
		return
	}

	resp := YouTubeSummaryResponse{
		Success:          true,
		Summary:          summarized,
		VideoURL:         videoURL,
		SummaryType:      opts.Type,
		TranscriptLength: len(result.Text),
		MetadataOnly:     result.MetadataOnly,
	}
	if result.MetadataOnly {
		resp.Warning = metadataOnlyWarning
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// HandlePDF summarizes the text content of an uploaded PDF.
func (h *SummarizeHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	const op = "SummarizeHandler.HandlePDF"

	// Validate request format
	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: maxPDFSize,
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      false,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxPDFSize); err != nil {
		respondError(w, r, apperrors.InvalidInput(op, err, "Invalid multipart form"))
		return
	}

	opts, err := h.summaryOptions(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, apperrors.InvalidInput(op, err, "A PDF file is required"))
		return
	}
	defer file.Close()

	if err := h.validator.ValidatePDFUpload(header.Filename, header.Size, maxPDFSize); err != nil {
		respondError(w, r, err)
		return
	}

	logger := h.logger.WithFields(logrus.Fields{
		"filename":     header.Filename,
		"summary_type": opts.Type,
	})
	logger.Info("Processing PDF summarization")

	path, err := h.saveUpload(file)
	if err != nil {
		respondError(w, r, apperrors.Internal(op, err, "Failed to store uploaded file"))
		return
	}
	defer os.Remove(path)

	text, err := h.documents.ExtractText(path)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if text == "" {
		respondError(w, r, apperrors.InvalidInput(op, nil, "No extractable text found in PDF"))
		return
	}

	summarized, err := h.summaries.Summarize(r.Context(), text, opts)
	if err != nil {
		respondError(w, r, apperrors.Internal(op, err, "Summarization failed"))
		return
	}

	respondJSON(w, r, http.StatusOK, PDFSummaryResponse{
		Success:     true,
		Summary:     summarized,
		Filename:    header.Filename,
		SummaryType: opts.Type,
		TextLength:  len(text),
	})
}

// summaryOptions reads and validates the shared summary form fields.
func (h *SummarizeHandler) summaryOptions(r *http.Request) (summary.Options, error) {
	const op = "SummarizeHandler.summaryOptions"

	summaryType := r.FormValue("summary_type")
	if summaryType == "" {
		summaryType = "short"
	}
	if err := h.validator.ValidateSummaryType(summaryType); err != nil {
		return summary.Options{}, err
	}

	opts := summary.Options{
		Type:       summaryType,
		TargetLang: r.FormValue("target_lang"),
	}
	if opts.TargetLang == "" {
		opts.TargetLang = "en"
	}

	if raw := r.FormValue("bullet_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count <= 0 {
			return summary.Options{}, apperrors.InvalidInput(op, err, "bullet_count must be a positive integer")
		}
		opts.BulletCount = count
	}

	return opts, nil
}

// saveUpload writes the uploaded file to the temp directory so the PDF
// reader can seek it.
func (h *SummarizeHandler) saveUpload(file io.Reader) (string, error) {
	path := filepath.Join(h.tempDir, uuid.New().String()+".pdf")

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
