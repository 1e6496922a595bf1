package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	saperrors "github.com/nepalflora/sap/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestQuery_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"session_id": "s-1",
			"mode":       "text",
			"caption":    nil,
			"answer":     "Rhododendron arboreum is the national flower of Nepal.",
			"retrieved": []map[string]interface{}{
				{"id": "doc-7", "source": "flora_of_nepal", "text": "...", "score": 0.91, "rrf_score": 0.032},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Query(context.Background(), QueryRequest{
		Text:      strPtr("national flower?"),
		SessionID: "s-1",
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Answer != "Rhododendron arboreum is the national flower of Nepal." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if resp.Mode != "text" {
		t.Errorf("Mode = %q, want %q", resp.Mode, "text")
	}
	if len(resp.Retrieved) != 1 {
		t.Fatalf("Retrieved len = %d, want 1", len(resp.Retrieved))
	}
	if resp.Retrieved[0].ID != "doc-7" {
		t.Errorf("Retrieved[0].ID = %q", resp.Retrieved[0].ID)
	}
	if resp.Retrieved[0].Score == nil || *resp.Retrieved[0].Score != 0.91 {
		t.Errorf("Retrieved[0].Score = %v, want 0.91", resp.Retrieved[0].Score)
	}
}

func TestQuery_RequestShape(t *testing.T) {
	tests := []struct {
		name      string
		req       QueryRequest
		wantText  json.RawMessage
		wantImage json.RawMessage
	}{
		{
			name:      "text only",
			req:       QueryRequest{Text: strPtr("hello"), SessionID: "s-1"},
			wantText:  json.RawMessage(`"hello"`),
			wantImage: json.RawMessage(`null`),
		},
		{
			name:      "image only",
			req:       QueryRequest{ImageBase64: strPtr("aGkh"), SessionID: "s-1"},
			wantText:  json.RawMessage(`null`),
			wantImage: json.RawMessage(`"aGkh"`),
		},
		{
			name:      "both",
			req:       QueryRequest{Text: strPtr("what plant?"), ImageBase64: strPtr("aGkh"), SessionID: "s-1"},
			wantText:  json.RawMessage(`"what plant?"`),
			wantImage: json.RawMessage(`"aGkh"`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]json.RawMessage
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if r.URL.Path != "/query" {
					t.Errorf("path = %s, want /query", r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode request body: %v", err)
				}
				json.NewEncoder(w).Encode(map[string]string{"answer": "ok"})
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			if _, err := c.Query(context.Background(), tt.req); err != nil {
				t.Fatalf("Query() error = %v", err)
			}

			if string(got["text"]) != string(tt.wantText) {
				t.Errorf("text = %s, want %s", got["text"], tt.wantText)
			}
			if string(got["image_base64"]) != string(tt.wantImage) {
				t.Errorf("image_base64 = %s, want %s", got["image_base64"], tt.wantImage)
			}
			if string(got["session_id"]) != `"s-1"` {
				t.Errorf("session_id = %s", got["session_id"])
			}
		})
	}
}

func TestQuery_MissingAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"session_id": "s-1", "mode": "text"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Query(context.Background(), QueryRequest{Text: strPtr("hi"), SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Answer != "" {
		t.Errorf("Answer = %q, want empty", resp.Answer)
	}
}

func TestQuery_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Query(context.Background(), QueryRequest{Text: strPtr("hi"), SessionID: "s-1"})
	if err == nil {
		t.Fatal("Query() error = nil, want error")
	}
	if !saperrors.Is(err, saperrors.KindBackend) {
		t.Errorf("kind = %v, want KindBackend", saperrors.GetKind(err))
	}
}

func TestQuery_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Query(context.Background(), QueryRequest{Text: strPtr("hi"), SessionID: "s-1"})
	if err == nil {
		t.Fatal("Query() error = nil, want error")
	}
	if !saperrors.Is(err, saperrors.KindBackend) {
		t.Errorf("kind = %v, want KindBackend", saperrors.GetKind(err))
	}
}

func TestQuery_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.Query(context.Background(), QueryRequest{Text: strPtr("hi"), SessionID: "s-1"})
	if err == nil {
		t.Fatal("Query() error = nil, want error")
	}
	if !saperrors.Is(err, saperrors.KindNetwork) {
		t.Errorf("kind = %v, want KindNetwork", saperrors.GetKind(err))
	}
}

func TestQueryURL_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8000/")
	if got := c.QueryURL(); got != "http://localhost:8000/query" {
		t.Errorf("QueryURL() = %q", got)
	}
}
