package mcp

import (
	"provq/internal/errors"
	"provq/internal/files"
	"provq/internal/toon"
)

// Parameter extraction helpers. MCP arguments arrive as decoded JSON, so
// numbers are float64 and everything is optional unless the schema says
// otherwise.

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok && v != ""
}

func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}

// depthParam reads maxDepth, defaulting to the configured bound.
func (s *Server) depthParam(params map[string]interface{}) int {
	if v, ok := params["maxDepth"].(float64); ok {
		return int(v)
	}
	return s.cfg.Query.MaxDepth
}

func formatParam(params map[string]interface{}) (string, error) {
	v, ok := params["format"].(string)
	if !ok || v == "" {
		return "json", nil
	}
	if v != "json" && v != "toon" {
		return "", errors.Newf(errors.InvalidParameter, "unknown format %q (want json or toon)", v)
	}
	return v, nil
}

// respond encodes a result in the requested format: the raw value for
// JSON, or the reshaped TOON payload rendered to text.
func (s *Server) respond(format string, jsonValue, toonPayload interface{}) (*Response, error) {
	if format != "toon" {
		return dataResponse(jsonValue, "json"), nil
	}
	text, err := toon.Encode(toonPayload, s.toonOpts)
	if err != nil {
		return nil, err
	}
	return dataResponse(text, "toon"), nil
}

func (s *Server) handleGetFileLineage(params map[string]interface{}) (*Response, error) {
	selector, ok := stringParam(params, "fileSelector")
	if !ok {
		return nil, errors.Newf(errors.InvalidParameter, "fileSelector is required")
	}
	format, err := formatParam(params)
	if err != nil {
		return nil, err
	}

	records := s.engine.FileLineage(selector)
	return s.respond(format, records, toon.FileLineagePayload(selector, records))
}

func (s *Server) handleGetFileAncestry(params map[string]interface{}) (*Response, error) {
	selector, ok := stringParam(params, "fileSelector")
	if !ok {
		return nil, errors.Newf(errors.InvalidParameter, "fileSelector is required")
	}
	format, err := formatParam(params)
	if err != nil {
		return nil, err
	}

	graph := s.engine.FileAncestry(selector, s.depthParam(params))
	return s.respond(format, graph, toon.FileAncestryPayload(selector, graph))
}

func (s *Server) handleGetFileDescendants(params map[string]interface{}) (*Response, error) {
	selector, ok := stringParam(params, "fileSelector")
	if !ok {
		return nil, errors.Newf(errors.InvalidParameter, "fileSelector is required")
	}
	format, err := formatParam(params)
	if err != nil {
		return nil, err
	}

	graph := s.engine.FileDescendants(selector, s.depthParam(params))
	return s.respond(format, graph, toon.FileDescendantsPayload(selector, graph))
}

func (s *Server) handleGetSiteArtifacts(params map[string]interface{}) (*Response, error) {
	siteID, ok := stringParam(params, "siteId")
	if !ok {
		return nil, errors.Newf(errors.InvalidParameter, "siteId is required")
	}
	format, err := formatParam(params)
	if err != nil {
		return nil, err
	}

	view := s.engine.SiteArtifacts(siteID)
	return s.respond(format, view, toon.SiteSummaryPayload(view, boolParam(params, "includeAllFiles")))
}

func (s *Server) handleListImageFiles(params map[string]interface{}) (*Response, error) {
	format, err := formatParam(params)
	if err != nil {
		return nil, err
	}

	images := files.ImageFiles(s.engine.Crate())
	return s.respond(format, images, map[string]interface{}{
		"type":   "ImageFiles",
		"images": images,
	})
}

func (s *Server) handleReadFile(params map[string]interface{}) (*Response, error) {
	selector, ok := stringParam(params, "fileSelector")
	if !ok {
		return nil, errors.Newf(errors.InvalidParameter, "fileSelector is required")
	}

	mode, _ := params["mode"].(string)
	switch mode {
	case "", "text":
		text, err := s.reader.ReadText(selector)
		if err != nil {
			return nil, err
		}
		return dataResponse(map[string]interface{}{
			"fileSelector": selector,
			"text":         text,
			"found":        text != "",
		}, "json"), nil
	case "table":
		table, err := s.reader.ReadTable(selector)
		if err != nil {
			return nil, err
		}
		return dataResponse(map[string]interface{}{
			"fileSelector": selector,
			"table":        table,
			"found":        table != nil,
		}, "json"), nil
	default:
		return nil, errors.Newf(errors.InvalidParameter, "unknown mode %q (want text or table)", mode)
	}
}
