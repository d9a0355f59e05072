package guildnet

import (
	"context"
	"fmt"

	"github.com/docxology/metaguildnet/internal/domain"
)

// GlobalHealth returns the Host App's overall health report.
func (c *Client) GlobalHealth(ctx context.Context) (*domain.HealthSummary, error) {
	var health domain.HealthSummary
	if err := c.get(ctx, "/api/health", &health); err != nil {
		return nil, fmt.Errorf("get global health: %w", err)
	}
	return &health, nil
}

// ClusterHealth returns the health snapshot for one cluster. Snapshots
// are recomputed server-side on every call and may flap.
func (c *Client) ClusterHealth(ctx context.Context, clusterID string) (*domain.ClusterHealth, error) {
	var health domain.ClusterHealth
	if err := c.get(ctx, fmt.Sprintf("/api/cluster/%s/health", clusterID), &health); err != nil {
		return nil, fmt.Errorf("get cluster health: %w", err)
	}
	return &health, nil
}

// Alive is a quick liveness probe against /healthz.
func (c *Client) Alive(ctx context.Context) bool {
	return c.get(ctx, "/healthz", nil) == nil
}
