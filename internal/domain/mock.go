package domain

import "context"

// MockGateway implements Gateway for testing.
type MockGateway struct {
	BaseURLVal string

	Clusters   []Cluster
	Workspaces map[string][]Workspace // by cluster ID
	Databases  []Database
	Tables     []TableSpec
	Rows       []Row
	InsertIDs  []string
	Logs       []LogLine
	Health     map[string]*ClusterHealth // by cluster ID
	Summary    *HealthSummary
	AliveVal   bool

	BootstrapID string

	// Error injection
	ListClustersErr    error
	GetClusterErr      error
	BootstrapErr       error
	ListWorkspacesErr  error
	GetWorkspaceErr    error
	CreateWorkspaceErr error
	DeleteWorkspaceErr error
	LogsErr            error
	DatabaseErr        error
	HealthErr          error
	SettingsErr        error

	// Per-cluster health error injection
	ClusterHealthErrs map[string]error

	// Call tracking
	DeletedWorkspace string
	DeletedCluster   string
	CreatedSpec      WorkspaceSpec
	UpdatedSettings  ClusterSettings
	HealthCalls      int
	ListCalls        int
}

// Compile-time check.
var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) BaseURL() string { return m.BaseURLVal }

func (m *MockGateway) ListClusters(_ context.Context) ([]Cluster, error) {
	m.ListCalls++
	if m.ListClustersErr != nil {
		return nil, m.ListClustersErr
	}
	return m.Clusters, nil
}

func (m *MockGateway) GetCluster(_ context.Context, id string) (*Cluster, error) {
	if m.GetClusterErr != nil {
		return nil, m.GetClusterErr
	}
	for i := range m.Clusters {
		if m.Clusters[i].ID == id {
			return &m.Clusters[i], nil
		}
	}
	return nil, &APIError{Kind: ErrNotFound, StatusCode: 404, Message: "cluster not found: " + id}
}

func (m *MockGateway) Bootstrap(_ context.Context, _ []byte) (string, error) {
	if m.BootstrapErr != nil {
		return "", m.BootstrapErr
	}
	return m.BootstrapID, nil
}

func (m *MockGateway) DeleteCluster(_ context.Context, id string) error {
	m.DeletedCluster = id
	return m.GetClusterErr
}

func (m *MockGateway) GetSettings(_ context.Context, _ string) (*ClusterSettings, error) {
	if m.SettingsErr != nil {
		return nil, m.SettingsErr
	}
	return &ClusterSettings{}, nil
}

func (m *MockGateway) UpdateSettings(_ context.Context, _ string, settings ClusterSettings) error {
	m.UpdatedSettings = settings
	return m.SettingsErr
}

func (m *MockGateway) ListWorkspaces(_ context.Context, clusterID string) ([]Workspace, error) {
	if m.ListWorkspacesErr != nil {
		return nil, m.ListWorkspacesErr
	}
	return m.Workspaces[clusterID], nil
}

func (m *MockGateway) GetWorkspace(_ context.Context, clusterID, name string) (*Workspace, error) {
	if m.GetWorkspaceErr != nil {
		return nil, m.GetWorkspaceErr
	}
	for _, ws := range m.Workspaces[clusterID] {
		if ws.Name == name {
			w := ws
			return &w, nil
		}
	}
	return nil, &APIError{Kind: ErrNotFound, StatusCode: 404, Message: "workspace not found: " + name}
}

func (m *MockGateway) CreateWorkspace(_ context.Context, clusterID string, spec WorkspaceSpec) (*Workspace, error) {
	m.CreatedSpec = spec
	if m.CreateWorkspaceErr != nil {
		return nil, m.CreateWorkspaceErr
	}
	ws := Workspace{Name: spec.Name, Image: spec.Image, Status: StatusPending, Env: spec.Env, Ports: spec.Ports}
	if m.Workspaces == nil {
		m.Workspaces = make(map[string][]Workspace)
	}
	m.Workspaces[clusterID] = append(m.Workspaces[clusterID], ws)
	return &ws, nil
}

func (m *MockGateway) DeleteWorkspace(_ context.Context, clusterID, name string) error {
	m.DeletedWorkspace = name
	if m.DeleteWorkspaceErr != nil {
		return m.DeleteWorkspaceErr
	}
	list := m.Workspaces[clusterID]
	for i, ws := range list {
		if ws.Name == name {
			m.Workspaces[clusterID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return &APIError{Kind: ErrNotFound, StatusCode: 404, Message: "workspace not found: " + name}
}

func (m *MockGateway) WorkspaceLogs(_ context.Context, _, _ string, _ int) ([]LogLine, error) {
	if m.LogsErr != nil {
		return nil, m.LogsErr
	}
	return m.Logs, nil
}

func (m *MockGateway) ListDatabases(_ context.Context, _ string) ([]Database, error) {
	if m.DatabaseErr != nil {
		return nil, m.DatabaseErr
	}
	return m.Databases, nil
}

func (m *MockGateway) CreateDatabase(_ context.Context, _, name, description string) (*Database, error) {
	if m.DatabaseErr != nil {
		return nil, m.DatabaseErr
	}
	db := Database{ID: "db-" + name, Name: name, Description: description}
	m.Databases = append(m.Databases, db)
	return &db, nil
}

func (m *MockGateway) DeleteDatabase(_ context.Context, _, _ string) error {
	return m.DatabaseErr
}

func (m *MockGateway) ListTables(_ context.Context, _, _ string) ([]TableSpec, error) {
	if m.DatabaseErr != nil {
		return nil, m.DatabaseErr
	}
	return m.Tables, nil
}

func (m *MockGateway) CreateTable(_ context.Context, _, _ string, spec TableSpec) error {
	if m.DatabaseErr != nil {
		return m.DatabaseErr
	}
	m.Tables = append(m.Tables, spec)
	return nil
}

func (m *MockGateway) Query(_ context.Context, _, _, _ string, limit int) ([]Row, error) {
	if m.DatabaseErr != nil {
		return nil, m.DatabaseErr
	}
	if limit > 0 && limit < len(m.Rows) {
		return m.Rows[:limit], nil
	}
	return m.Rows, nil
}

func (m *MockGateway) Insert(_ context.Context, _, _, _ string, rows []Row) ([]string, error) {
	if m.DatabaseErr != nil {
		return nil, m.DatabaseErr
	}
	m.Rows = append(m.Rows, rows...)
	if len(m.InsertIDs) >= len(rows) {
		return m.InsertIDs[:len(rows)], nil
	}
	return m.InsertIDs, nil
}

func (m *MockGateway) GlobalHealth(_ context.Context) (*HealthSummary, error) {
	if m.HealthErr != nil {
		return nil, m.HealthErr
	}
	if m.Summary == nil {
		return &HealthSummary{Healthy: true}, nil
	}
	return m.Summary, nil
}

func (m *MockGateway) ClusterHealth(_ context.Context, clusterID string) (*ClusterHealth, error) {
	m.HealthCalls++
	if err, ok := m.ClusterHealthErrs[clusterID]; ok {
		return nil, err
	}
	if m.HealthErr != nil {
		return nil, m.HealthErr
	}
	if h, ok := m.Health[clusterID]; ok {
		return h, nil
	}
	return &ClusterHealth{ClusterID: clusterID, K8sReachable: true}, nil
}

func (m *MockGateway) Alive(_ context.Context) bool { return m.AliveVal }
