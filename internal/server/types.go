package server

// Tool describes one invocable operation and its argument schema, as
// published on the tool-listing endpoints.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// CallRequest is the body accepted by the HTTP call endpoint.
type CallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// CallResponse wraps the rendered text result of one tool call.
type CallResponse struct {
	Result string `json:"result"`
}
