package health

// Component es el estado de una dependencia.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok | down
	Error  string `json:"error,omitempty"`
}

// HealthResponse para GET /readyz
type HealthResponse struct {
	Status     string      `json:"status"` // ready | degraded | unavailable
	Version    string      `json:"version,omitempty"`
	Components []Component `json:"components"`
}

// VersionResponse para GET /
type VersionResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
