package mcp

import (
	"provq/internal/errors"
)

// Tool represents a provq tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call and returns an
// envelope response.
type ToolHandler func(params map[string]interface{}) (*Response, error)

// EnvelopeSchemaVersion is the current envelope schema version.
const EnvelopeSchemaVersion = "1.0"

// Response is the standard envelope for all tool responses. Data is either
// the query result (JSON mode) or a rendered TOON string.
type Response struct {
	SchemaVersion  string                `json:"schemaVersion"`
	Data           interface{}           `json:"data"`
	Format         string                `json:"format,omitempty"`
	Error          *string               `json:"error,omitempty"`
	ErrorCode      string                `json:"errorCode,omitempty"`
	SuggestedFixes []errors.FixAction    `json:"suggestedFixes,omitempty"`
}

// dataResponse wraps a successful result.
func dataResponse(data interface{}, format string) *Response {
	return &Response{
		SchemaVersion: EnvelopeSchemaVersion,
		Data:          data,
		Format:        format,
	}
}

// errorResponse wraps a failure, carrying the stable code and suggested
// fixes when the error is a typed one.
func errorResponse(err error) *Response {
	msg := err.Error()
	code := errors.CodeOf(err)
	return &Response{
		SchemaVersion:  EnvelopeSchemaVersion,
		Error:          &msg,
		ErrorCode:      string(code),
		SuggestedFixes: errors.GetSuggestedFixes(code),
	}
}

// selectorSchema is the shared shape of the fileSelector parameter.
func selectorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "File selector: exact @id, exact alternateName, or alternateName substring",
	}
}

// formatSchema is the shared shape of the optional format parameter.
func formatSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"json", "toon"},
		"default":     "json",
		"description": "Result encoding: structured JSON or compact TOON text",
	}
}

// depthSchema is the shared shape of the optional maxDepth parameter.
func depthSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Traversal bound in action hops; negative or absent means unlimited, 0 returns only the matched files",
	}
}

// GetToolDefinitions returns all tool definitions
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "getFileLineage",
			Description: "Get the direct lineage of a file: the action that produced it, the tool used, its inputs, and associated site ids",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fileSelector": selectorSchema(),
					"format":       formatSchema(),
				},
				"required": []string{"fileSelector"},
			},
		},
		{
			Name:        "getFileAncestry",
			Description: "Walk upstream provenance: every file, dataset, and action that contributed to the selected file, with used/generated edges",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fileSelector": selectorSchema(),
					"maxDepth":     depthSchema(),
					"format":       formatSchema(),
				},
				"required": []string{"fileSelector"},
			},
		},
		{
			Name:        "getFileDescendants",
			Description: "Walk downstream provenance: every file, dataset, and action derived from the selected file, with used/generated edges",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fileSelector": selectorSchema(),
					"maxDepth":     depthSchema(),
					"format":       formatSchema(),
				},
				"required": []string{"fileSelector"},
			},
		},
		{
			Name:        "getSiteArtifacts",
			Description: "Get a site-centric view of the crate: site parameters, matching datasets and files, processing runs, and lineage of well-known outputs",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"siteId": map[string]interface{}{
						"type":        "string",
						"description": "Site identifier matched against site_id parameters and artifact names",
					},
					"includeAllFiles": map[string]interface{}{
						"type":        "boolean",
						"default":     false,
						"description": "Include full parameter/dataset/file/run listings in TOON output",
					},
					"format": formatSchema(),
				},
				"required": []string{"siteId"},
			},
		},
		{
			Name:        "listImageFiles",
			Description: "List every file in the crate with an image media type, guessed from encodingFormat or name extension",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": formatSchema(),
				},
			},
		},
		{
			Name:        "readFile",
			Description: "Read the content of a crate artifact: as text, or parsed into header and rows for CSV files",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fileSelector": selectorSchema(),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"text", "table"},
						"default":     "text",
						"description": "How to read the artifact",
					},
				},
				"required": []string{"fileSelector"},
			},
		},
	}
}

// RegisterTools wires every tool handler.
func (s *Server) RegisterTools() {
	s.tools["getFileLineage"] = s.handleGetFileLineage
	s.tools["getFileAncestry"] = s.handleGetFileAncestry
	s.tools["getFileDescendants"] = s.handleGetFileDescendants
	s.tools["getSiteArtifacts"] = s.handleGetSiteArtifacts
	s.tools["listImageFiles"] = s.handleListImageFiles
	s.tools["readFile"] = s.handleReadFile
}
