// Package webhook sends fire-and-forget HTTP notifications for telemetry
// events. The primary use case is ntfy.sh, but any HTTP webhook works. It
// plugs into telemetry.Logger.Hook so a running demo can notify an external
// endpoint without coupling the runtime to any particular transport.
package webhook

import (
	"net/http"
	"strings"
	"time"

	"github.com/LISSConsulting/reactea/internal/telemetry"
)

// Notifier posts plain-text HTTP notifications for selected telemetry events.
type Notifier struct {
	url        string
	title      string
	onError    bool
	onShutdown bool
	client     *http.Client
}

// New creates a Notifier. appName is used as the X-Title header; if empty,
// "teadrive" is used instead.
func New(notifURL, appName string, onError, onShutdown bool) *Notifier {
	title := "teadrive"
	if appName != "" {
		title = appName
	}
	return &Notifier{
		url:        notifURL,
		title:      title,
		onError:    onError,
		onShutdown: onShutdown,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook is a telemetry.Logger.Hook-compatible function. It fires asynchronous
// POSTs for events that match the configured notification flags.
func (n *Notifier) Hook(e telemetry.Event) {
	switch e.Kind {
	case telemetry.EventError:
		if n.onError {
			go n.post(e.Message)
		}
	case telemetry.EventShutdown:
		if n.onShutdown {
			go n.post(e.Message)
		}
	}
}

// post sends a plain-text POST to the configured URL. Errors are silently
// discarded so notification failures never interrupt the running program.
func (n *Notifier) post(message string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	resp, err := n.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
