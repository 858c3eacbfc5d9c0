package models

// StatusView is what the account-management page renders for one service
type StatusView struct {
	ServerName        string                 `json:"server_name"`
	ServerID          string                 `json:"server_id"`
	Status            string                 `json:"status"`
	Metrics           map[string]interface{} `json:"metrics"`
	GameStatus        map[string]interface{} `json:"game_status,omitempty"`
	ConnectionAddress string                 `json:"connection_address"`
	Message           string                 `json:"message,omitempty"`
}

// ControlRequest is the body of a status-page control action
type ControlRequest struct {
	Action string `json:"action" binding:"required"`
}

// TestConnectionRequest identifies the panel to probe: either a stored
// panel server record or inline credentials
type TestConnectionRequest struct {
	ServerRecordID string `json:"server_record_id"`
	Endpoint       string `json:"endpoint"`
	APIKey         string `json:"api_key"`
}

// SSORedirect carries the URL a client should be sent to
type SSORedirect struct {
	RedirectTo string `json:"redirect_to"`
}
