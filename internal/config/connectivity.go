package config

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CheckConnectivity probes every configured model concurrently, each bounded
// by the probe timeout. Disabled models are reported false without a network
// call. Probe failures degrade to a false entry; no probe aborts the batch.
func (s *Store) CheckConnectivity(ctx context.Context) map[string]bool {
	results := make(map[string]bool, len(s.models))
	var mu sync.Mutex

	g := new(errgroup.Group)
	for name, mc := range s.models {
		if !mc.Enabled {
			results[name] = false
			continue
		}
		g.Go(func() error {
			ok := s.probe(ctx, mc)
			mu.Lock()
			results[name] = ok
			mu.Unlock()
			return nil
		})
	}
	// Probes never return errors, only false results.
	_ = g.Wait()
	return results
}

func (s *Store) probe(ctx context.Context, mc ModelConfig) bool {
	ctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	url := strings.TrimRight(mc.BaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Warn("connectivity check failed", "model", mc.Name, "error", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+mc.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("connectivity check failed", "model", mc.Name, "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
