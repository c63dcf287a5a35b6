package demo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/LISSConsulting/reactea"
	"github.com/LISSConsulting/reactea/task"
)

// FetchStatus is the state machine driving the http-fetch demo's view.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchDone
	FetchFailed
)

// FetchModel tracks one request at a time; dispatching Fetch while Loading
// is a no-op (see HTTPFetchUpdate), so there is never more than one
// outstanding request racing to write Result.
type FetchModel struct {
	Status FetchStatus
	URL    string
	Result string
	Err    string
}

// FetchMsg is the message algebra for the http-fetch demo.
type FetchMsg struct {
	kind   fetchMsgKind
	result string
	err    error
}

type fetchMsgKind int

const (
	fetchStart fetchMsgKind = iota
	fetchSucceeded
	fetchFailed
)

// FetchRequested is dispatched to start a request against url.
func FetchRequested() FetchMsg { return FetchMsg{kind: fetchStart} }

func fetchSucceededMsg(body string) FetchMsg {
	return FetchMsg{kind: fetchSucceeded, result: body}
}

func fetchFailedMsg(err error) FetchMsg {
	return FetchMsg{kind: fetchFailed, err: err}
}

// Fetcher performs the HTTP GET a FetchRequested command executes. Production
// code should build one bound to a *http.Client with the configured timeout;
// tests substitute a stub to avoid real network calls.
type Fetcher func(ctx context.Context, url string) (string, error)

// NewFetcher returns a Fetcher backed by http.Client with the given timeout.
func NewFetcher(timeout time.Duration) Fetcher {
	client := &http.Client{Timeout: timeout}
	return func(ctx context.Context, url string) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("httpfetch: %s returned %s", url, resp.Status)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}

// HTTPFetchInit starts idle at url, with no outstanding request.
func HTTPFetchInit(url string) func() (FetchModel, tea.Cmd[FetchMsg]) {
	return func() (FetchModel, tea.Cmd[FetchMsg]) {
		return FetchModel{Status: FetchIdle, URL: url}, tea.None[FetchMsg]()
	}
}

// HTTPFetchUpdate drives fetch via fetcher: a start message while idle spawns
// the request as a Cmd built with task.Attempt; while already loading, a
// second start message is ignored rather than racing a duplicate request.
func HTTPFetchUpdate(fetcher Fetcher) func(FetchMsg, FetchModel) (FetchModel, tea.Cmd[FetchMsg]) {
	return func(msg FetchMsg, m FetchModel) (FetchModel, tea.Cmd[FetchMsg]) {
		switch msg.kind {
		case fetchStart:
			if m.Status == FetchLoading {
				return m, tea.None[FetchMsg]()
			}
			m.Status = FetchLoading
			m.Result = ""
			m.Err = ""
			url := m.URL
			cmd := task.Attempt(func(e task.Either[error, string]) FetchMsg {
				if err, ok := e.GetLeft(); ok {
					return fetchFailedMsg(err)
				}
				body, _ := e.GetRight()
				return fetchSucceededMsg(body)
			}, func(ctx context.Context) (string, error) {
				return fetcher(ctx, url)
			})
			return m, cmd

		case fetchSucceeded:
			m.Status = FetchDone
			m.Result = msg.result
			return m, tea.None[FetchMsg]()

		case fetchFailed:
			m.Status = FetchFailed
			m.Err = msg.err.Error()
			return m, tea.None[FetchMsg]()

		default:
			return m, tea.None[FetchMsg]()
		}
	}
}

// HTTPFetchSubscriptions declines every subscription; requests are driven
// entirely by dispatched FetchRequested messages.
func HTTPFetchSubscriptions(FetchModel) tea.Sub[FetchMsg] {
	return tea.NoneSub[FetchMsg]()
}
