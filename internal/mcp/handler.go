package mcp

import (
	"encoding/json"
	"fmt"

	"provq/internal/errors"
)

// handleMessage processes an incoming MCP message and returns a response,
// or nil when none is required.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}
	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("handling request", "method", msg.Method, "id", msg.Id)

	switch msg.Method {
	case "initialize":
		return NewResultMessage(msg.Id, s.handleInitialize())
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.GetToolDefinitions(),
		})
	case "tools/call":
		return s.handleCallToolRequest(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized", "session", s.sessionID)
	default:
		s.logger.Debug("unknown notification", "method", msg.Method)
	}
}

// handleInitialize answers the MCP handshake.
func (s *Server) handleInitialize() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":      "provq",
			"version":   s.version,
			"sessionId": s.sessionID,
		},
	}
}

// handleCallToolRequest handles the tools/call request
func (s *Server) handleCallToolRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object", nil)
	}

	toolName, ok := params["name"].(string)
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: missing tool name", nil)
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Unknown tool: %s", toolName), nil)
	}

	s.logger.Info("calling tool", "tool", toolName, "params", toolParams)

	result, err := handler(toolParams)
	if err != nil {
		// Tool failures travel inside the envelope, not as protocol
		// errors; the call itself succeeded.
		result = errorResponse(err)
	}

	return NewResultMessage(msg.Id, textContent(result))
}

// textContent wraps an envelope in the MCP content shape.
func textContent(resp *Response) interface{} {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(errorResponse(
			errors.New(errors.InternalError, "cannot marshal tool response", err)))
	}
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(data),
			},
		},
	}
}
