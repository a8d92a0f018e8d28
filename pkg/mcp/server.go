package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	kith "github.com/unowned-ai/kith/pkg"
	"github.com/unowned-ai/kith/pkg/session"
)

type KithMCPServer struct {
	mcpServer *server.MCPServer
	session   *session.Session
	logger    *zap.Logger
}

// NewKithMCPServer builds an MCP server exposing the network held by sess.
// Every tool is registered before it returns.
func NewKithMCPServer(sess *session.Session, logger *zap.Logger) *KithMCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"Kith MCP Server",
		kith.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterTools(s, sess, logger)

	return &KithMCPServer{
		mcpServer: s,
		session:   sess,
		logger:    logger.Named("mcp"),
	}
}

// Start runs the stdio event loop until stdin closes. Logs go to stderr so
// they never mix with protocol messages.
func (s *KithMCPServer) Start() error {
	s.logger.Info("serving MCP over stdio", zap.String("version", kith.Version))
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *KithMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close checkpoints the WAL so the database file is complete on its own.
// The connection itself belongs to the caller.
func (s *KithMCPServer) Close() error {
	// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
	if _, err := s.session.DB().Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		s.logger.Warn("WAL checkpoint failed during close", zap.Error(err))
		return err
	}
	return nil
}
