// Package device derives a coarse, human-readable device summary from the
// User-Agent header. The summary is attached to emitted events so audit
// consumers can see which client surface a lender mutation came from.
package device

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"bureau/pkg/requestcontext"
)

// Summarize extracts a display name from a User-Agent string.
// Returns format: "Browser on OS" (e.g., "Chrome on Linux"), with a
// "(mobile)" suffix for mobile agents. Unknown agents yield "Unknown Device".
func Summarize(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	os := strings.TrimSpace(ua.OS())

	if browser == "" && os == "" {
		// Non-browser clients (bureauctl, SDKs) send plain product tokens.
		if fields := strings.Fields(userAgentString); len(fields) > 0 {
			return fields[0]
		}
		return "Unknown Device"
	}
	if browser == "" {
		browser = "Unknown"
	}
	if os == "" {
		os = "Unknown"
	}

	summary := browser + " on " + os
	if ua.Mobile() {
		summary += " (mobile)"
	}
	return summary
}

// Capture stores the device summary in the request context.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithDevice(r.Context(), Summarize(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
