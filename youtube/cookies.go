package youtube

import (
	"bufio"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// loadCookieFile reads a Netscape-format cookie file (the format browser
// exporters and yt-dlp use) into the jar. Malformed lines are skipped.
func loadCookieFile(jar http.CookieJar, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open cookie file")
	}
	defer f.Close()

	byDomain := map[string][]*http.Cookie{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// domain, include-subdomains, path, secure, expiry, name, value
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}

		cookie := &http.Cookie{
			Name:   fields[5],
			Value:  fields[6],
			Path:   fields[2],
			Domain: strings.TrimPrefix(fields[0], "."),
			Secure: strings.EqualFold(fields[3], "TRUE"),
		}
		if expiry, err := strconv.ParseInt(fields[4], 10, 64); err == nil && expiry > 0 {
			cookie.Expires = time.Unix(expiry, 0)
		}
		byDomain[cookie.Domain] = append(byDomain[cookie.Domain], cookie)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read cookie file")
	}

	for domain, cookies := range byDomain {
		u := &url.URL{Scheme: "https", Host: domain}
		jar.SetCookies(u, cookies)
	}
	return nil
}
