package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegram_Send(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	tg := NewTelegram("123:abc")
	tg.APIBase = ts.URL
	if err := tg.Send(context.Background(), "42", "UP https://a.test (200)"); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/bot123:abc/sendMessage") {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotPayload["chat_id"] != "42" || !strings.HasPrefix(gotPayload["text"], "UP ") {
		t.Fatalf("unexpected payload: %+v", gotPayload)
	}
}

func TestTelegram_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
	}))
	defer ts.Close()

	tg := NewTelegram("123:abc")
	tg.APIBase = ts.URL
	if err := tg.Send(context.Background(), "42", "x"); err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}

func TestTelegram_DisabledWithoutToken(t *testing.T) {
	if NewTelegram("") != nil {
		t.Fatalf("expected nil client without token")
	}
}
