package youtube

import "fmt"

// FormatDuration renders seconds as M:SS.
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatViewCount renders a view count with K/M suffixing at the thousand
// and million thresholds.
func FormatViewCount(views int64) string {
	switch {
	case views <= 0:
		return "Unknown views"
	case views >= 1000000:
		return fmt.Sprintf("%.1fM views", float64(views)/1000000)
	case views >= 1000:
		return fmt.Sprintf("%.1fK views", float64(views)/1000)
	default:
		return fmt.Sprintf("%d views", views)
	}
}

// FormatUploadDate renders a compact YYYYMMDD date as YYYY-MM-DD. Anything
// not in the compact form passes through unchanged.
func FormatUploadDate(date string) string {
	if date == "" {
		return "Unknown"
	}
	if len(date) != 8 {
		return date
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:8]
}
