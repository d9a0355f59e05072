package guildnet

import (
	"context"
	"fmt"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
)

// ListWorkspaces returns all workspaces in a cluster. The Host App
// serves the list under its legacy "servers" endpoint and envelope.
func (c *Client) ListWorkspaces(ctx context.Context, clusterID string) ([]domain.Workspace, error) {
	var response struct {
		Servers []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Image  string `json:"image"`
			Status string `json:"status"`
			Ready  int    `json:"readyReplicas"`
			Ports  []struct {
				Port     int    `json:"port"`
				Protocol string `json:"protocol,omitempty"`
			} `json:"ports"`
			CreatedAt string `json:"createdAt,omitempty"`
		} `json:"servers"`
	}

	path := fmt.Sprintf("/api/cluster/%s/servers", clusterID)
	if err := c.get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}

	workspaces := make([]domain.Workspace, len(response.Servers))
	for i, s := range response.Servers {
		ports := make([]domain.Port, len(s.Ports))
		for j, p := range s.Ports {
			ports[j] = domain.Port{Port: p.Port, Protocol: p.Protocol}
		}
		created, _ := time.Parse(time.RFC3339, s.CreatedAt)
		workspaces[i] = domain.Workspace{
			ID:        s.ID,
			Name:      s.Name,
			Image:     s.Image,
			Status:    domain.StatusFrom(s.Status),
			Ready:     s.Ready,
			Ports:     ports,
			CreatedAt: created,
		}
	}
	return workspaces, nil
}

// CreateWorkspace creates a new workspace from spec. Name and Image
// are required by the Host App; env and ports are sent in caller order.
func (c *Client) CreateWorkspace(ctx context.Context, clusterID string, spec domain.WorkspaceSpec) (*domain.Workspace, error) {
	var response struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	path := fmt.Sprintf("/api/cluster/%s/workspaces", clusterID)
	if err := c.post(ctx, path, spec, &response); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &domain.Workspace{
		ID:     response.ID,
		Name:   spec.Name,
		Image:  spec.Image,
		Status: domain.StatusFrom(response.Status),
		Env:    spec.Env,
		Ports:  spec.Ports,
	}, nil
}

// GetWorkspace retrieves workspace details. The Host App answers with
// a nested spec/status document.
func (c *Client) GetWorkspace(ctx context.Context, clusterID, name string) (*domain.Workspace, error) {
	var response struct {
		Spec struct {
			Image string `json:"image"`
		} `json:"spec"`
		Status struct {
			Phase     string `json:"phase"`
			Ready     int    `json:"readyReplicas"`
			CreatedAt string `json:"createdAt,omitempty"`
		} `json:"status"`
	}

	path := fmt.Sprintf("/api/cluster/%s/workspaces/%s", clusterID, name)
	if err := c.get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", name, err)
	}

	created, _ := time.Parse(time.RFC3339, response.Status.CreatedAt)
	return &domain.Workspace{
		Name:      name,
		Image:     response.Spec.Image,
		Status:    domain.StatusFrom(response.Status.Phase),
		Ready:     response.Status.Ready,
		CreatedAt: created,
	}, nil
}

// DeleteWorkspace deletes a workspace. The operation is not
// idempotent: deleting a workspace that does not exist surfaces
// NotFound, and callers wanting idempotent semantics treat that as
// success themselves.
func (c *Client) DeleteWorkspace(ctx context.Context, clusterID, name string) error {
	path := fmt.Sprintf("/api/cluster/%s/workspaces/%s", clusterID, name)
	if err := c.del(ctx, path); err != nil {
		return fmt.Errorf("delete workspace %s: %w", name, err)
	}
	return nil
}

// WorkspaceLogs retrieves up to tailLines log lines, in server order
// (oldest first); the client does not re-sort.
func (c *Client) WorkspaceLogs(ctx context.Context, clusterID, name string, tailLines int) ([]domain.LogLine, error) {
	path := fmt.Sprintf("/api/cluster/%s/workspaces/%s/logs", clusterID, name)
	if tailLines > 0 {
		path = fmt.Sprintf("%s?tail=%d", path, tailLines)
	}

	var response []struct {
		Timestamp string `json:"timestamp"`
		Line      string `json:"line"`
	}
	if err := c.get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("get logs for %s: %w", name, err)
	}

	logs := make([]domain.LogLine, len(response))
	for i, l := range response {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		logs[i] = domain.LogLine{Timestamp: ts, Line: l.Line}
	}
	return logs, nil
}
