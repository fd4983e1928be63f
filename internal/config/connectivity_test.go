package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func connectivityStore(t *testing.T, models ...ModelConfig) *Store {
	t.Helper()
	s := New(t.TempDir())
	for _, mc := range models {
		if err := s.AddModel(mc); err != nil {
			t.Fatalf("AddModel error: %v", err)
		}
	}
	return s
}

func TestCheckConnectivity_ProbesOnlyEnabledModels(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/models" {
			t.Errorf("probe path: got %s, want /models", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header: got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := connectivityStore(t,
		ModelConfig{Name: "up", BaseURL: srv.URL, APIKey: "secret", Enabled: true},
		ModelConfig{Name: "off", BaseURL: srv.URL, APIKey: "secret", Enabled: false},
	)

	got := s.CheckConnectivity(context.Background())
	if !got["up"] {
		t.Error("enabled model with 200 response should be reachable")
	}
	if got["off"] {
		t.Error("disabled model must report unreachable")
	}
	if hits != 1 {
		t.Fatalf("disabled model must not be probed, got %d hits", hits)
	}
}

func TestCheckConnectivity_FailuresAreFalseNotErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := connectivityStore(t,
		ModelConfig{Name: "denied", BaseURL: srv.URL, APIKey: "bad", Enabled: true},
		ModelConfig{Name: "gone", BaseURL: "http://127.0.0.1:1", Enabled: true},
	)

	got := s.CheckConnectivity(context.Background())
	if got["denied"] {
		t.Error("non-200 response should be unreachable")
	}
	if got["gone"] {
		t.Error("connection failure should be unreachable")
	}
	if len(got) != 2 {
		t.Fatalf("result must cover every model, got %v", got)
	}
}

func TestCheckConnectivity_SlowProbeTimesOutWithoutStallingBatch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer slow.Close()
	defer close(release)

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer fast.Close()

	s := connectivityStore(t,
		ModelConfig{Name: "slow", BaseURL: slow.URL, Enabled: true},
		ModelConfig{Name: "fast", BaseURL: fast.URL, Enabled: true},
		ModelConfig{Name: "off", BaseURL: fast.URL, Enabled: false},
	).WithProbeTimeout(100 * time.Millisecond)

	start := time.Now()
	got := s.CheckConnectivity(context.Background())
	elapsed := time.Since(start)

	if len(got) != 3 {
		t.Fatalf("result must cover every model, got %v", got)
	}
	if got["slow"] || got["off"] {
		t.Errorf("slow and disabled models should be unreachable: %v", got)
	}
	if !got["fast"] {
		t.Error("fast model should be reachable")
	}
	// Probes run concurrently; the batch is bounded by one probe timeout,
	// not their sum.
	if elapsed > 2*time.Second {
		t.Fatalf("batch took %v, probes did not run concurrently", elapsed)
	}
}
