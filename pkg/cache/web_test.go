package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebClient(t *testing.T) {
	t.Run("ReturnsBody", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := NewWebClient(NewWebClientParams{})
		body, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"ok":true}` {
			t.Fatalf("unexpected body: %s", body)
		}
	})

	t.Run("NonSuccessStatusIsError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewWebClient(NewWebClientParams{})
		if _, err := client.Get(context.Background(), server.URL); err == nil {
			t.Fatal("expected error for 404")
		}
	})

	t.Run("RetriesTransientFailures", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				http.Error(w, "busy", http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewWebClient(NewWebClientParams{MaxTries: 3})
		if _, err := client.Get(context.Background(), server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Fatalf("unexpected attempt count: got %d, want 3", calls)
		}
	})
}
