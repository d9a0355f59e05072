package domain

import "context"

// ClusterRepository provides access to cluster registration and settings.
type ClusterRepository interface {
	ListClusters(ctx context.Context) ([]Cluster, error)
	GetCluster(ctx context.Context, id string) (*Cluster, error)
	Bootstrap(ctx context.Context, kubeconfig []byte) (string, error)
	DeleteCluster(ctx context.Context, id string) error
	GetSettings(ctx context.Context, id string) (*ClusterSettings, error)
	UpdateSettings(ctx context.Context, id string, settings ClusterSettings) error
}

// WorkspaceRepository provides access to workspace operations within a cluster.
type WorkspaceRepository interface {
	ListWorkspaces(ctx context.Context, clusterID string) ([]Workspace, error)
	GetWorkspace(ctx context.Context, clusterID, name string) (*Workspace, error)
	CreateWorkspace(ctx context.Context, clusterID string, spec WorkspaceSpec) (*Workspace, error)
	DeleteWorkspace(ctx context.Context, clusterID, name string) error
	WorkspaceLogs(ctx context.Context, clusterID, name string, tailLines int) ([]LogLine, error)
}

// DatabaseRepository provides access to database resources within a cluster.
type DatabaseRepository interface {
	ListDatabases(ctx context.Context, clusterID string) ([]Database, error)
	CreateDatabase(ctx context.Context, clusterID, name, description string) (*Database, error)
	DeleteDatabase(ctx context.Context, clusterID, dbID string) error
	ListTables(ctx context.Context, clusterID, dbID string) ([]TableSpec, error)
	CreateTable(ctx context.Context, clusterID, dbID string, spec TableSpec) error
	Query(ctx context.Context, clusterID, dbID, table string, limit int) ([]Row, error)
	Insert(ctx context.Context, clusterID, dbID, table string, rows []Row) ([]string, error)
}

// HealthRepository provides access to health snapshots.
type HealthRepository interface {
	GlobalHealth(ctx context.Context) (*HealthSummary, error)
	ClusterHealth(ctx context.Context, clusterID string) (*ClusterHealth, error)
	Alive(ctx context.Context) bool
}

// Gateway is the primary port combining all Host App operations.
// The CLI and dashboard depend on this interface, not on concrete
// implementations.
type Gateway interface {
	ClusterRepository
	WorkspaceRepository
	DatabaseRepository
	HealthRepository
	BaseURL() string
}
