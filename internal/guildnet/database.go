package guildnet

import (
	"context"
	"fmt"

	"github.com/docxology/metaguildnet/internal/domain"
)

// ListDatabases returns the databases registered under a cluster.
func (c *Client) ListDatabases(ctx context.Context, clusterID string) ([]domain.Database, error) {
	var dbs []domain.Database
	if err := c.get(ctx, fmt.Sprintf("/api/cluster/%s/db", clusterID), &dbs); err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	return dbs, nil
}

// CreateDatabase creates a database.
func (c *Client) CreateDatabase(ctx context.Context, clusterID, name, description string) (*domain.Database, error) {
	payload := map[string]string{"name": name, "description": description}

	var db domain.Database
	if err := c.post(ctx, fmt.Sprintf("/api/cluster/%s/db", clusterID), payload, &db); err != nil {
		return nil, fmt.Errorf("create database %s: %w", name, err)
	}
	return &db, nil
}

// DeleteDatabase deletes a database.
func (c *Client) DeleteDatabase(ctx context.Context, clusterID, dbID string) error {
	if err := c.del(ctx, fmt.Sprintf("/api/cluster/%s/db/%s", clusterID, dbID)); err != nil {
		return fmt.Errorf("delete database %s: %w", dbID, err)
	}
	return nil
}

// ListTables returns the tables in a database.
func (c *Client) ListTables(ctx context.Context, clusterID, dbID string) ([]domain.TableSpec, error) {
	var tables []domain.TableSpec
	path := fmt.Sprintf("/api/cluster/%s/db/%s/tables", clusterID, dbID)
	if err := c.get(ctx, path, &tables); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// CreateTable creates a table with the given ordered column schema.
func (c *Client) CreateTable(ctx context.Context, clusterID, dbID string, spec domain.TableSpec) error {
	path := fmt.Sprintf("/api/cluster/%s/db/%s/tables", clusterID, dbID)
	if err := c.post(ctx, path, spec, nil); err != nil {
		return fmt.Errorf("create table %s: %w", spec.Name, err)
	}
	return nil
}

// Query returns up to limit rows from a table.
func (c *Client) Query(ctx context.Context, clusterID, dbID, table string, limit int) ([]domain.Row, error) {
	var response struct {
		Rows []domain.Row `json:"rows"`
	}
	path := fmt.Sprintf("/api/cluster/%s/db/%s/tables/%s/rows?limit=%d", clusterID, dbID, table, limit)
	if err := c.get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return response.Rows, nil
}

// Insert inserts rows and returns the generated ids. The Host App
// guarantees id order matches input row order; the client does not
// verify that.
func (c *Client) Insert(ctx context.Context, clusterID, dbID, table string, rows []domain.Row) ([]string, error) {
	payload := map[string]any{"rows": rows}

	var response struct {
		IDs []string `json:"ids"`
	}
	path := fmt.Sprintf("/api/cluster/%s/db/%s/tables/%s/rows", clusterID, dbID, table)
	if err := c.post(ctx, path, payload, &response); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return response.IDs, nil
}
