package device

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bureau/pkg/requestcontext"
)

const chromeLinuxUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestSummarize_Browser(t *testing.T) {
	summary := Summarize(chromeLinuxUA)
	assert.Contains(t, summary, "Chrome")
	assert.Contains(t, summary, " on ")
	assert.Contains(t, summary, "Linux")
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, "Unknown Device", Summarize(""))
}

func TestSummarize_PlainProductToken(t *testing.T) {
	assert.Equal(t, "bureauctl/1.0", Summarize("bureauctl/1.0"))
}

func TestCapture_StoresSummaryInContext(t *testing.T) {
	var got string
	h := Capture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.Device(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "bureauctl/1.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "bureauctl/1.0", got)
}
