package folio

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

// closeTracker remembers whether the response body was closed.
type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

// cannedTransport serves one fixed response, bypassing the network.
type cannedTransport struct {
	status int
	body   *closeTracker
}

func (t *cannedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: t.status,
		Status:     http.StatusText(t.status),
		Body:       t.body,
		Request:    req,
	}, nil
}

func TestJwgetDecodesJSON(t *testing.T) {
	body := &closeTracker{Reader: strings.NewReader(`{"n": 42}`)}
	client := &http.Client{Transport: &cannedTransport{status: 200, body: body}}

	var data struct {
		N int `json:"n"`
	}
	if err := jwget(client, "http://example.invalid/q", &data); err != nil {
		t.Fatalf("jwget: %v", err)
	}
	if data.N != 42 {
		t.Errorf("n = %d, want 42", data.N)
	}
	if !body.closed {
		t.Error("response body left open")
	}
}

func TestJwgetClosesBodyOnHTTPError(t *testing.T) {
	body := &closeTracker{Reader: strings.NewReader("nope")}
	client := &http.Client{Transport: &cannedTransport{status: 503, body: body}}

	var data any
	if err := jwget(client, "http://example.invalid/q", &data); err == nil {
		t.Fatal("want error on 503")
	}
	if !body.closed {
		t.Error("response body left open on error path")
	}
}
