package validation

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aditya-niranjan/smart-summarizer/config"
	"github.com/aditya-niranjan/smart-summarizer/errors"
)

// SummaryTypes are the accepted values of the summary_type request field.
var SummaryTypes = []string{"short", "bullet", "detailed", "comprehensive"}

type Validator struct {
	config *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// ValidateURL performs URL validation
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	if urlStr == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	// Protocol validation
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	// Domain validation
	host := parsedURL.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}

// ValidateSummaryType checks the requested summary mode against the accepted
// set. An empty value is fine; callers default it.
func (v *Validator) ValidateSummaryType(summaryType string) error {
	const op = "Validator.ValidateSummaryType"

	if summaryType == "" {
		return nil
	}
	for _, t := range SummaryTypes {
		if summaryType == t {
			return nil
		}
	}
	return errors.InvalidInput(op, nil, fmt.Sprintf(
		"Invalid summary_type %q, must be one of: %s", summaryType, strings.Join(SummaryTypes, ", ")))
}

// ValidatePDFUpload checks the uploaded filename and size.
func (v *Validator) ValidatePDFUpload(filename string, size, maxSize int64) error {
	const op = "Validator.ValidatePDFUpload"

	if filename == "" {
		return errors.InvalidInput(op, nil, "A PDF file is required")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return errors.InvalidInput(op, nil, "Only PDF files are supported")
	}
	if maxSize > 0 && size > maxSize {
		return errors.InvalidInput(op, nil, "PDF file too large")
	}
	return nil
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	AllowedMethods   []string
	RequireJSON      bool
}

// ValidateRequest validates HTTP requests
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	// Method validation
	if len(opts.AllowedMethods) > 0 {
		methodAllowed := false
		for _, method := range opts.AllowedMethods {
			if r.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			return errors.InvalidInput(op, nil, fmt.Sprintf("Method %s not allowed", r.Method))
		}
	}

	// Content type validation
	if opts.RequireJSON {
		if contentType := r.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
			return errors.InvalidInput(op, nil, "Content-Type must be application/json")
		}
	}

	// Content length validation
	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.InvalidInput(op, nil, "Request body too large")
	}

	return nil
}
