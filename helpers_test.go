package tinify_test

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// stubTransport records outgoing requests and answers them without network.
type stubTransport struct {
	mu     sync.Mutex
	reqs   []*http.Request
	bodies [][]byte
	idle   int

	handle func(*http.Request) (*http.Response, error)
}

func (t *stubTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	var body []byte

	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body.Close()
	}

	t.mu.Lock()
	t.reqs = append(t.reqs, r)
	t.bodies = append(t.bodies, body)
	t.mu.Unlock()

	return t.handle(r)
}

func (t *stubTransport) CloseIdleConnections() {
	t.mu.Lock()
	t.idle++
	t.mu.Unlock()
}

func (t *stubTransport) last() (*http.Request, []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.reqs) == 0 {
		return nil, nil
	}

	return t.reqs[len(t.reqs)-1], t.bodies[len(t.bodies)-1]
}

func reply(code int, body string, head map[string]string) func(*http.Request) (*http.Response, error) {
	return func(r *http.Request) (*http.Response, error) {
		res := &http.Response{
			StatusCode: code,
			Status:     http.StatusText(code),
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}

		for k, v := range head {
			res.Header.Set(k, v)
		}

		return res, nil
	}
}

func fail(err error) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) { return nil, err }
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
