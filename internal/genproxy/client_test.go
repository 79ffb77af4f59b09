package genproxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type completionReply struct {
	status  int
	content string
	delay   time.Duration
	// empty sends a completion with no choices instead of content.
	empty bool
}

func newProxyServer(t *testing.T, reply completionReply) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reply.delay > 0 {
			select {
			case <-time.After(reply.delay):
			case <-r.Context().Done():
				return
			}
		}
		if reply.status != 0 && reply.status != 200 {
			w.WriteHeader(reply.status)
			w.Write([]byte(`{"error":{"message":"upstream failure"}}`))
			return
		}

		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "test-model",
			"choices": []any{},
		}
		if !reply.empty {
			resp["choices"] = []any{
				map[string]any{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": reply.content,
					},
				},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))

	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateReturnsContent(t *testing.T) {
	srv := newProxyServer(t, completionReply{content: "a gentle reading"})
	c := NewClient("test-key", srv.URL+"/v1", "test-model", 5*time.Second)

	out, err := c.Generate(context.Background(), "palm", Request{
		System: "sys", User: "user", MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a gentle reading" {
		t.Errorf("content = %q", out)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := newProxyServer(t, completionReply{empty: true})
	c := NewClient("test-key", srv.URL+"/v1", "test-model", 5*time.Second)

	_, err := c.Generate(context.Background(), "tongue", Request{System: "sys", User: "user"})

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not *Error", err)
	}
	if genErr.Reason != ReasonEmpty {
		t.Errorf("Reason = %q, want %q", genErr.Reason, ReasonEmpty)
	}
	if genErr.Stage != "tongue" {
		t.Errorf("Stage = %q, want tongue", genErr.Stage)
	}
}

func TestGenerateUpstreamFailure(t *testing.T) {
	srv := newProxyServer(t, completionReply{status: 500})
	c := NewClient("test-key", srv.URL+"/v1", "test-model", 5*time.Second)

	_, err := c.Generate(context.Background(), "dream", Request{System: "sys", User: "user"})

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not *Error", err)
	}
	if genErr.Reason != ReasonNetwork {
		t.Errorf("Reason = %q, want %q", genErr.Reason, ReasonNetwork)
	}
}

func TestGenerateTimeout(t *testing.T) {
	srv := newProxyServer(t, completionReply{content: "late", delay: 2 * time.Second})
	c := NewClient("test-key", srv.URL+"/v1", "test-model", 50*time.Millisecond)

	start := time.Now()
	_, err := c.Generate(context.Background(), "palm", Request{System: "sys", User: "user"})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call took %v, timeout did not bound it", elapsed)
	}

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not *Error", err)
	}
	if genErr.Reason != ReasonTimeout {
		t.Errorf("Reason = %q, want %q", genErr.Reason, ReasonTimeout)
	}
}

func TestGenerateModelHintOverridesDefault(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.URL+"/v1", "default-model", 5*time.Second)

	if _, err := c.Generate(context.Background(), "palm", Request{System: "s", User: "u", ModelHint: "hinted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "hinted" {
		t.Errorf("model = %q, want hinted", gotModel)
	}

	if _, err := c.Generate(context.Background(), "palm", Request{System: "s", User: "u"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "default-model" {
		t.Errorf("model = %q, want default-model", gotModel)
	}
}
