package domain

import "time"

// WorkspaceStatus is the lifecycle phase reported by the Host App.
// The server-side vocabulary may grow; unrecognized values map to
// StatusUnknown instead of failing.
type WorkspaceStatus string

const (
	StatusPending     WorkspaceStatus = "Pending"
	StatusRunning     WorkspaceStatus = "Running"
	StatusFailed      WorkspaceStatus = "Failed"
	StatusTerminating WorkspaceStatus = "Terminating"
	StatusUnknown     WorkspaceStatus = "Unknown"
)

// StatusFrom maps a raw status string onto the known vocabulary.
func StatusFrom(s string) WorkspaceStatus {
	switch WorkspaceStatus(s) {
	case StatusPending, StatusRunning, StatusFailed, StatusTerminating:
		return WorkspaceStatus(s)
	default:
		return StatusUnknown
	}
}

// Cluster is a registered target environment tracked by the Host App.
type Cluster struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Namespace     string `json:"namespace,omitempty"`
	IngressDomain string `json:"ingress_domain,omitempty"`
}

// ClusterSettings are the mutable per-cluster settings.
type ClusterSettings struct {
	Name          string `json:"name,omitempty"`
	Namespace     string `json:"namespace,omitempty"`
	IngressDomain string `json:"ingress_domain,omitempty"`
	OrgID         string `json:"org_id,omitempty"`
}

// ClusterHealth is a transient snapshot; successive snapshots may flap.
type ClusterHealth struct {
	ClusterID         string `json:"clusterId"`
	KubeconfigPresent bool   `json:"kubeconfigPresent"`
	KubeconfigValid   bool   `json:"kubeconfigValid"`
	K8sReachable      bool   `json:"k8sReachable"`
	K8sError          string `json:"k8sError,omitempty"`
	RecommendedAction string `json:"recommendedAction,omitempty"`
}

// HealthSummary is the Host App's global health report.
type HealthSummary struct {
	Healthy  bool            `json:"healthy"`
	Clusters []ClusterHealth `json:"clusters"`
}

// Workspace is a single deployed containerized environment within a cluster.
// Identity is (cluster ID, name).
type Workspace struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Status    WorkspaceStatus `json:"status"`
	Ready     int             `json:"readyReplicas,omitempty"`
	Ports     []Port          `json:"ports,omitempty"`
	Env       []EnvVar        `json:"env,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// WorkspaceSpec defines workspace creation parameters. Name and Image
// are required; Env and Ports keep caller order on the wire.
type WorkspaceSpec struct {
	Name  string   `json:"name"`
	Image string   `json:"image"`
	Env   []EnvVar `json:"env,omitempty"`
	Ports []Port   `json:"ports,omitempty"`
}

// EnvVar is one container environment variable.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Port is one exposed container port.
type Port struct {
	Port     int    `json:"port"`
	Protocol string `json:"protocol,omitempty"`
}

// LogLine is one workspace log line, in server order (oldest first).
type LogLine struct {
	Timestamp time.Time `json:"timestamp"`
	Line      string    `json:"line"`
}

// Database is a named database resource under a cluster.
type Database struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TableSpec describes a table with an ordered column schema.
type TableSpec struct {
	Name       string       `json:"name"`
	PrimaryKey string       `json:"primaryKey"`
	Schema     []ColumnSpec `json:"schema"`
}

// ColumnSpec is one column definition.
type ColumnSpec struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
	Unique   bool   `json:"unique,omitempty"`
	Indexed  bool   `json:"indexed,omitempty"`
}

// Row is one database row; column set is table-specific.
type Row map[string]any
