package summary

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	boldPattern        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	topicHeaderPattern = regexp.MustCompile(`^<strong>.+:</strong>$`)
	h3Pattern          = regexp.MustCompile(`(?m)^##\s*(.+)$`)
	h4Pattern          = regexp.MustCompile(`(?m)^###\s*(.+)$`)
	h1Pattern          = regexp.MustCompile(`(?m)^#\s*(.+)$`)
	strongColonPattern = regexp.MustCompile(`<strong>([^<]+:)</strong>`)
	bulletPrefix       = regexp.MustCompile(`^[-•*]\s*`)
	bulletLinePattern  = regexp.MustCompile(`^[-*•]\s`)
	metadataLine       = regexp.MustCompile(`^(Video Title|Title|Uploader|Duration|Views|Upload Date|Description|Note):`)
)

// FormatSummaryOutput renders model output (or raw fallback text) as clean
// HTML for direct display. The rendering differs by summary mode: bullet
// output becomes topic headers with lists, detailed output keeps its section
// hierarchy, short output is paragraphs with metadata labels as headers.
func FormatSummaryOutput(text, summaryType string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// Convert markdown bold to HTML
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")

	switch summaryType {
	case "bullet":
		return formatBullet(text)
	case "detailed", "comprehensive":
		return formatDetailed(text)
	default:
		return formatShort(text)
	}
}

func formatBullet(text string) string {
	var htmlParts []string
	var currentList []string

	flush := func() {
		if len(currentList) > 0 {
			htmlParts = append(htmlParts, renderList(currentList))
			currentList = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		// Main topic headers: bold text ending with a colon
		case topicHeaderPattern.MatchString(line):
			flush()
			header := strings.ReplaceAll(line, "<strong>", "")
			header = strings.ReplaceAll(header, "</strong>", "")
			htmlParts = append(htmlParts, fmt.Sprintf("<h4>%s</h4>", header))

		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*"):
			currentList = append(currentList, bulletPrefix.ReplaceAllString(line, ""))

		default:
			flush()
			htmlParts = append(htmlParts, fmt.Sprintf("<p>%s</p>", line))
		}
	}
	flush()

	return strings.Join(htmlParts, "\n")
}

func formatDetailed(text string) string {
	// Convert markdown headers; subsections first so "##" is not consumed
	// by the single-hash pattern.
	text = h4Pattern.ReplaceAllString(text, "<h4>$1</h4>")
	text = h3Pattern.ReplaceAllString(text, "<h3>$1</h3>")
	text = h1Pattern.ReplaceAllString(text, "<h3>$1</h3>")

	// Bold section labels ending with colons become headers too
	text = strongColonPattern.ReplaceAllString(text, "<h4>$1</h4>")

	var htmlParts []string
	var currentList []string

	flush := func() {
		if len(currentList) > 0 {
			htmlParts = append(htmlParts, renderList(currentList))
			currentList = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "<h") || strings.HasPrefix(line, "</"):
			flush()
			htmlParts = append(htmlParts, line)

		case bulletLinePattern.MatchString(line):
			currentList = append(currentList, bulletPrefix.ReplaceAllString(line, ""))

		default:
			flush()
			htmlParts = append(htmlParts, fmt.Sprintf("<p>%s</p>", line))
		}
	}
	flush()

	return strings.Join(htmlParts, "\n")
}

func formatShort(text string) string {
	var htmlParts []string
	var paragraph []string

	// Consecutive text lines collapse into one paragraph; metadata headers
	// break paragraphs apart.
	flush := func() {
		if len(paragraph) > 0 {
			htmlParts = append(htmlParts, fmt.Sprintf("<p>%s</p>", strings.Join(paragraph, " ")))
			paragraph = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if metadataLine.MatchString(line) {
			flush()
			htmlParts = append(htmlParts, fmt.Sprintf("<h4>%s</h4>", line))
		} else {
			paragraph = append(paragraph, line)
		}
	}
	flush()

	return strings.Join(htmlParts, "\n")
}

func renderList(items []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, item := range items {
		sb.WriteString("<li>")
		sb.WriteString(item)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
