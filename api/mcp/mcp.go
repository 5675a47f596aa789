// Package mcp provides an MCP (Model Context Protocol) server for the hearth memory store.
package mcp

import (
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/utils"
)

type Config struct {
	// Service is the shared memory service backing all tools
	Service *memory.Service

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the onboarding and recall tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "hearth",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if c.Noop {
		// return the empty MCP server with no tools configured
		// if the noop flag is set (i.e., MCP capabilities are disabled)
		s.mcpServer = mcpServer
		return s, nil
	}

	if c.Service == nil {
		return nil, errors.New("memory service is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        nextQuestionToolName,
		Description: nextQuestionDescription,
	}, s.handleNextQuestion)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        answerQuestionToolName,
		Description: answerQuestionDescription,
	}, s.handleAnswerQuestion)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        recallAnswersToolName,
		Description: recallAnswersDescription,
	}, s.handleRecallAnswers)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        progressToolName,
		Description: progressDescription,
	}, s.handleProgress)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
