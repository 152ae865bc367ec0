// Package notify sends fire-and-forget HTTP notifications when commands
// finish. The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LISSConsulting/LISSTech.Console/internal/console"
	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
)

// DefaultTitle is the X-Title used when no console title is configured.
const DefaultTitle = "Console"

// maxSummary bounds how much command output goes into a notification.
const maxSummary = 200

// Notifier posts plain-text HTTP notifications for finished commands.
type Notifier struct {
	url        string
	title      string
	onComplete bool
	onError    bool
	client     *http.Client
}

// New creates a Notifier. title is sent as the X-Title header; if empty,
// DefaultTitle is used instead.
func New(notifURL, title string, onComplete, onError bool) *Notifier {
	if title == "" {
		title = DefaultTitle
	}
	return &Notifier{
		url:        notifURL,
		title:      title,
		onComplete: onComplete,
		onError:    onError,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook is a console.Options.Observer. It fires an asynchronous POST when
// the outcome matches the configured notification flags.
func (n *Notifier) Hook(o console.Outcome) {
	switch {
	case o.Failed() && n.onError:
		go n.post(fmt.Sprintf("%s failed: %s", o.Command, summarize(o.Text())))
	case !o.Failed() && n.onComplete:
		go n.post(fmt.Sprintf("%s completed in %s", o.Command, o.Elapsed.Round(time.Millisecond)))
	}
}

// post sends a plain-text POST to the configured URL. Failures are logged
// at debug level only so they never interrupt the console.
func (n *Notifier) post(message string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		logger.Named("notify").Debugf("build request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	resp, err := n.client.Do(req)
	if err != nil {
		logger.Named("notify").Debugf("post: %v", err)
		return
	}
	resp.Body.Close()
}

// summarize returns the first line of s, cut to maxSummary runes.
func summarize(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > maxSummary {
		s = string(r[:maxSummary]) + "…"
	}
	return s
}
