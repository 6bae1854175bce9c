package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newServer(t *testing.T, tagsStatus int, tagsBody string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.WriteHeader(http.StatusOK)
		case "/api/tags":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tagsStatus)
			_, _ = w.Write([]byte(tagsBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		model       string
		wantPresent bool
		wantModels  int
	}{
		{
			name:        "latest tag matches bare name",
			body:        `{"models":[{"name":"mistral:latest","model":"mistral:latest"}]}`,
			model:       "mistral",
			wantPresent: true,
			wantModels:  1,
		},
		{
			name:        "exact tag",
			body:        `{"models":[{"name":"llama3:8b"},{"name":"mistral:7b"}]}`,
			model:       "mistral:7b",
			wantPresent: true,
			wantModels:  2,
		},
		{
			name:        "other tag does not match bare name",
			body:        `{"models":[{"name":"mistral:7b"}]}`,
			model:       "mistral",
			wantPresent: false,
			wantModels:  1,
		},
		{
			name:        "no models",
			body:        `{"models":[]}`,
			model:       "mistral",
			wantPresent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, tt.body)
			c, err := NewClient(srv.URL)
			if err != nil {
				t.Fatal(err)
			}

			status, err := c.Check(context.Background(), tt.model)
			if err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if !status.Reachable {
				t.Error("Reachable = false")
			}
			if status.ModelPresent != tt.wantPresent {
				t.Errorf("ModelPresent = %v, want %v", status.ModelPresent, tt.wantPresent)
			}
			if len(status.Models) != tt.wantModels {
				t.Errorf("Models = %v, want %d entries", status.Models, tt.wantModels)
			}
		})
	}
}

func TestCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatal(err)
	}
	status, err := c.Check(context.Background(), "mistral")
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if status.Reachable || status.ModelPresent {
		t.Errorf("status = %+v, want unreachable", status)
	}
}

func TestNewClient_RejectsBadHost(t *testing.T) {
	for _, host := range []string{"localhost", "://nope"} {
		if _, err := NewClient(host); err == nil {
			t.Errorf("NewClient(%q) succeeded", host)
		}
	}
}
