package dto

// MessageResponse is the payload of the static hello endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// DiagnosticsResponse reports backend and document store health for GET /test.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
