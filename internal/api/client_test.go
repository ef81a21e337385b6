package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConfidenceBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  Confidence
	}{
		{0.49999, ConfidenceLow},
		{0.5, ConfidenceMedium},
		{0.69999, ConfidenceMedium},
		{0.7, ConfidenceHigh},
		{0.0, ConfidenceLow},
		{1.0, ConfidenceHigh},
	}

	for _, tc := range cases {
		score := tc.score
		got := SourceRef{Score: &score}.Confidence()
		if got != tc.want {
			t.Errorf("score %v: got %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestConfidenceMissingScore(t *testing.T) {
	if got := (SourceRef{}).Confidence(); got != ConfidenceLow {
		t.Errorf("missing score: got %s, want %s", got, ConfidenceLow)
	}
}

func TestParseSourceType(t *testing.T) {
	if got := ParseSourceType("table"); got != SourceTable {
		t.Errorf("got %s, want table", got)
	}
	if got := ParseSourceType("unknown-kind"); got != SourceText {
		t.Errorf("unknown type should fall back to text, got %s", got)
	}
}

func TestPing(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/ping" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := NewClient(srv.URL).Ping(context.Background()); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})

	t.Run("unhealthy status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		if err := NewClient(srv.URL).Ping(context.Background()); err == nil {
			t.Fatal("expected error for 503")
		}
	})
}

func TestUpload(t *testing.T) {
	t.Run("sends multipart file field", func(t *testing.T) {
		var gotName string
		var gotContent []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("missing file field: %v", err)
			}
			defer file.Close()
			gotName = header.Filename
			gotContent, _ = io.ReadAll(file)
			json.NewEncoder(w).Encode(UploadResponse{Success: true, Filename: header.Filename})
		}))
		defer srv.Close()

		resp, err := NewClient(srv.URL).Upload(context.Background(), "report.pdf", strings.NewReader("%PDF-1.4"))
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if gotName != "report.pdf" {
			t.Errorf("filename = %q, want report.pdf", gotName)
		}
		if string(gotContent) != "%PDF-1.4" {
			t.Errorf("content = %q", gotContent)
		}
		if !resp.Success {
			t.Error("expected success response")
		}
	})

	t.Run("surfaces server detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Only PDF files are supported"})
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Upload(context.Background(), "report.exe", strings.NewReader("x"))
		if err == nil || err.Error() != "Only PDF files are supported" {
			t.Fatalf("err = %v, want server detail", err)
		}
	})

	t.Run("generic message for unparseable error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("<html>boom</html>"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Upload(context.Background(), "report.pdf", strings.NewReader("x"))
		if err == nil || err.Error() != GenericUploadError {
			t.Fatalf("err = %v, want %q", err, GenericUploadError)
		}
	})
}

func TestQuery(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req QueryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if req.Query != "what changed?" || req.TopK != 5 {
				t.Errorf("request = %+v", req)
			}
			score := 0.9
			json.NewEncoder(w).Encode(QueryResponse{
				Success: true,
				Answer:  "**Everything** changed.",
				Sources: []SourceRef{{Type: SourceText, Score: &score, Content: "snippet"}},
			})
		}))
		defer srv.Close()

		resp, err := NewClient(srv.URL).Query(context.Background(), "what changed?", 5)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if resp.Answer != "**Everything** changed." {
			t.Errorf("answer = %q", resp.Answer)
		}
		if len(resp.Sources) != 1 {
			t.Fatalf("sources = %d, want 1", len(resp.Sources))
		}
	})

	t.Run("nil sources become empty slice", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"answer":"ok","used_web_search":false}`))
		}))
		defer srv.Close()

		resp, err := NewClient(srv.URL).Query(context.Background(), "q", 5)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if resp.Sources == nil || len(resp.Sources) != 0 {
			t.Errorf("sources = %#v, want empty slice", resp.Sources)
		}
	})

	t.Run("generic message on non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Query(context.Background(), "q", 5)
		if err == nil || err.Error() != GenericQueryError {
			t.Fatalf("err = %v, want %q", err, GenericQueryError)
		}
	})
}
