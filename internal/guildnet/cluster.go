package guildnet

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/docxology/metaguildnet/internal/domain"
)

// ListClusters returns all registered clusters. An empty list is a
// valid answer, not an error.
func (c *Client) ListClusters(ctx context.Context) ([]domain.Cluster, error) {
	var response struct {
		Clusters []domain.Cluster `json:"clusters"`
	}
	if err := c.get(ctx, "/api/deploy/clusters", &response); err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	return response.Clusters, nil
}

// GetCluster returns details for one cluster.
func (c *Client) GetCluster(ctx context.Context, id string) (*domain.Cluster, error) {
	var cluster domain.Cluster
	if err := c.get(ctx, "/api/deploy/clusters/"+id, &cluster); err != nil {
		return nil, fmt.Errorf("get cluster %s: %w", id, err)
	}
	return &cluster, nil
}

// Bootstrap registers a new cluster from a kubeconfig. The Host App
// may answer without a clusterId; that is reported as an empty string,
// not an error, and the caller decides what to do with it.
func (c *Client) Bootstrap(ctx context.Context, kubeconfig []byte) (string, error) {
	payload := map[string]any{
		"cluster": map[string]any{
			"kubeconfig": base64.StdEncoding.EncodeToString(kubeconfig),
		},
	}

	var response struct {
		ClusterID string `json:"clusterId"`
	}
	if err := c.post(ctx, "/bootstrap", payload, &response); err != nil {
		return "", fmt.Errorf("bootstrap cluster: %w", err)
	}

	if response.ClusterID == "" {
		c.logf("bootstrap: response carried no clusterId")
	}
	return response.ClusterID, nil
}

// DeleteCluster removes a cluster registration.
func (c *Client) DeleteCluster(ctx context.Context, id string) error {
	if err := c.del(ctx, "/api/deploy/clusters/"+id); err != nil {
		return fmt.Errorf("delete cluster %s: %w", id, err)
	}
	return nil
}

// GetSettings retrieves the mutable settings for a cluster.
func (c *Client) GetSettings(ctx context.Context, id string) (*domain.ClusterSettings, error) {
	var settings domain.ClusterSettings
	if err := c.get(ctx, "/api/settings/cluster/"+id, &settings); err != nil {
		return nil, fmt.Errorf("get cluster settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings updates cluster-specific settings.
func (c *Client) UpdateSettings(ctx context.Context, id string, settings domain.ClusterSettings) error {
	if err := c.put(ctx, "/api/settings/cluster/"+id, settings, nil); err != nil {
		return fmt.Errorf("update cluster settings: %w", err)
	}
	return nil
}
