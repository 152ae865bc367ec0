package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Console/internal/console"
	"github.com/LISSConsulting/LISSTech.Console/internal/executor"
	"github.com/LISSConsulting/LISSTech.Console/internal/logger"
)

func init() {
	logger.Discard()
}

// captureServer starts an httptest.Server that records incoming requests.
// It returns the server and a function to collect all captured requests.
func captureServer(t *testing.T) (*httptest.Server, func() []capturedReq) {
	t.Helper()
	var mu sync.Mutex
	var reqs []capturedReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, capturedReq{
			method:      r.Method,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
			title:       r.Header.Get("X-Title"),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedReq {
		mu.Lock()
		defer mu.Unlock()
		out := make([]capturedReq, len(reqs))
		copy(out, reqs)
		return out
	}
}

type capturedReq struct {
	method      string
	body        string
	contentType string
	title       string
}

// waitForRequests polls until count requests are captured or the deadline is reached.
func waitForRequests(t *testing.T, collect func() []capturedReq, count int) []capturedReq {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := collect(); len(got) >= count {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d request(s)", count)
	return nil
}

func outcome(command string, res executor.Result, err error) console.Outcome {
	return console.Outcome{
		Submission: console.Submission{Command: command},
		Result:     res,
		Err:        err,
		Elapsed:    1500 * time.Millisecond,
	}
}

func TestHook_OnComplete(t *testing.T) {
	srv, collect := captureServer(t)

	n := New(srv.URL, "myapp", true, false)
	n.Hook(outcome("make build", executor.Result{Output: "ok"}, nil))

	reqs := waitForRequests(t, collect, 1)
	r := reqs[0]
	if r.method != http.MethodPost {
		t.Errorf("method = %q, want POST", r.method)
	}
	if r.body != "make build completed in 1.5s" {
		t.Errorf("body = %q", r.body)
	}
	if r.contentType != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", r.contentType)
	}
	if r.title != "myapp" {
		t.Errorf("X-Title = %q, want myapp", r.title)
	}
}

func TestHook_OnComplete_Disabled(t *testing.T) {
	srv, collect := captureServer(t)

	n := New(srv.URL, "", false, true)
	n.Hook(outcome("ls", executor.Result{Output: "ok"}, nil))

	// Give the goroutine time to fire (it shouldn't, but we need to be sure).
	time.Sleep(50 * time.Millisecond)
	if got := collect(); len(got) != 0 {
		t.Errorf("expected no requests, got %d", len(got))
	}
}

func TestHook_OnError(t *testing.T) {
	tests := []struct {
		name string
		in   console.Outcome
		want string
	}{
		{"application error", outcome("bogus", executor.Result{Output: "not found\nmore", Error: true}, nil), "bogus failed: not found"},
		{"transport error", outcome("ls", executor.Result{}, errors.New("refused")), "ls failed: Error: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, collect := captureServer(t)
			n := New(srv.URL, "proj", false, true)
			n.Hook(tt.in)

			reqs := waitForRequests(t, collect, 1)
			if reqs[0].body != tt.want {
				t.Errorf("body = %q, want %q", reqs[0].body, tt.want)
			}
		})
	}
}

func TestHook_OnError_Disabled(t *testing.T) {
	srv, collect := captureServer(t)

	n := New(srv.URL, "", true, false)
	n.Hook(outcome("bogus", executor.Result{Output: "oops", Error: true}, nil))

	time.Sleep(50 * time.Millisecond)
	if got := collect(); len(got) != 0 {
		t.Errorf("expected no requests, got %d", len(got))
	}
}

func TestHook_FallbackTitle(t *testing.T) {
	srv, collect := captureServer(t)

	n := New(srv.URL, "", true, false)
	n.Hook(outcome("ls", executor.Result{}, nil))

	reqs := waitForRequests(t, collect, 1)
	if reqs[0].title != DefaultTitle {
		t.Errorf("X-Title = %q, want %q", reqs[0].title, DefaultTitle)
	}
}

func TestHook_PostFailureSilent(t *testing.T) {
	// Point at a server that is already closed → connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	n := New(srv.URL, "", true, true)
	// None of these should panic or block.
	n.Hook(outcome("ls", executor.Result{}, nil))
	n.Hook(outcome("ls", executor.Result{Error: true}, nil))

	time.Sleep(100 * time.Millisecond)
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("x", maxSummary+10)
	if got := summarize(long); len([]rune(got)) != maxSummary+1 {
		t.Errorf("summarize kept %d runes, want %d", len([]rune(got)), maxSummary+1)
	}
	if got := summarize("first\nsecond"); got != "first" {
		t.Errorf("summarize = %q, want first line", got)
	}
}

func TestHook_AsConsoleObserver(t *testing.T) {
	srv, collect := captureServer(t)
	n := New(srv.URL, "", false, true)

	c := console.New(console.Options{
		Executor: executor.Func(func(_ context.Context, _ string) (executor.Result, error) {
			return executor.Result{Output: "boom", Error: true}, nil
		}),
		Observer: n.Hook,
	})
	sub, _ := c.Submit("deploy")
	c.Deliver(c.Execute(context.Background(), sub))

	reqs := waitForRequests(t, collect, 1)
	if reqs[0].body != "deploy failed: boom" {
		t.Errorf("body = %q", reqs[0].body)
	}
}
