// Package mcp exposes the provenance queries as tools over the Model
// Context Protocol: a JSON-RPC 2.0 message loop on stdio, one line per
// message.
package mcp

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"provq/internal/config"
	"provq/internal/files"
	"provq/internal/query"
	"provq/internal/toon"
)

// Server serves provenance tools for one crate over stdio.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *slog.Logger

	version   string
	sessionID string

	engine   *query.Engine
	reader   *files.Reader
	cfg      *config.Config
	toonOpts toon.Options

	tools map[string]ToolHandler
}

// NewServer creates an MCP server over one loaded crate.
func NewServer(version string, engine *query.Engine, reader *files.Reader, cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		logger:    logger,
		version:   version,
		sessionID: uuid.NewString(),
		engine:    engine,
		reader:    reader,
		cfg:       cfg,
		toonOpts: toon.Options{
			Indent:       cfg.Toon.Indent,
			Delimiter:    cfg.Toon.Delimiter,
			LengthMarker: cfg.Toon.LengthMarker,
		},
		tools: make(map[string]ToolHandler),
	}

	s.RegisterTools()
	return s
}

// SessionID returns the identifier assigned to this server session.
func (s *Server) SessionID() string {
	return s.sessionID
}

// Start begins processing messages. It returns nil on clean shutdown (EOF
// on stdin).
func (s *Server) Start() error {
	s.logger.Info("MCP server starting",
		"version", s.version,
		"session", s.sessionID,
	)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			s.logger.Error("error reading message", "error", err.Error())

			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, fmt.Sprintf("Failed to parse message: %v", err))
			}
			continue
		}

		response := s.handleMessage(msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
