package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID   string                 `json:"tool_id" binding:"required"`
	Params   map[string]interface{} `json:"params" binding:"required"`
	ClientID *string                `json:"client_id,omitempty"`
}

// StreamMessage represents a WebSocket message on the state stream
type StreamMessage struct {
	Type       string              `json:"type"`
	ClientID   string              `json:"client_id,omitempty"`
	Outcome    *RequestOutcome     `json:"outcome,omitempty"`
	Permission *PermissionSnapshot `json:"permission,omitempty"`
	Message    string              `json:"message,omitempty"`
	Timestamp  int64               `json:"timestamp,omitempty"`
}
