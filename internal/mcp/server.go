// Package mcp implements the JSON-RPC transport (stdio and HTTP) that
// fronts the kinship reasoning engine, hand-rolled exactly the way the
// teacher's internal/mcp does rather than built on a generic MCP SDK.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/kinbase/kinship-mcp/internal/kinship"
	"github.com/kinbase/kinship-mcp/internal/tools"
)

// Server represents the MCP server
type Server struct {
	log   hclog.Logger
	tools *tools.KinshipTools
}

// MCPRequest represents a generic MCP request
type MCPRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// MCPResponse represents a generic MCP response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewServer creates a new MCP server instance fronting a fresh kinship
// session registry.
func NewServer(log hclog.Logger) (*Server, error) {
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Server{
		log:   log.Named("mcp"),
		tools: tools.NewKinshipTools(log),
	}, nil
}

// ServeSTDIO starts the MCP server in STDIO mode
func (s *Server) ServeSTDIO(ctx context.Context) error {
	// Read from stdin and write to stdout
	decoder := json.NewDecoder(os.Stdin)
	encoder := json.NewEncoder(os.Stdout)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			var request MCPRequest
			if err := decoder.Decode(&request); err != nil {
				// Send error response
				response := MCPResponse{
					JSONRPC: "2.0",
					ID:      request.ID,
					Error: &MCPError{
						Code:    -32700,
						Message: "Parse error",
						Data:    err.Error(),
					},
				}
				encoder.Encode(response)
				continue
			}

			response := s.handleRequest(ctx, &request)
			if err := encoder.Encode(response); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
		}
	}
}

// ServeHTTP starts the MCP server in HTTP mode
func (s *Server) ServeHTTP(ctx context.Context, port string) error {
	router := mux.NewRouter()

	router.HandleFunc("/mcp", s.handleHTTPRequest).Methods("POST")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	s.log.Info("http transport listening", "port", port)
	return server.ListenAndServe()
}

// handleHTTPRequest handles HTTP requests
func (s *Server) handleHTTPRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request MCPRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response := MCPResponse{
			JSONRPC: "2.0",
			ID:      nil,
			Error: &MCPError{
				Code:    -32700,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	response := s.handleRequest(r.Context(), &request)
	json.NewEncoder(w).Encode(response)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "kinship-mcp",
	})
}

// handleRequest processes MCP requests
func (s *Server) handleRequest(ctx context.Context, request *MCPRequest) *MCPResponse {
	s.log.Debug("handling request", "method", request.Method, "id", request.ID)
	switch request.Method {
	case "initialize":
		return s.handleInitialize(request)
	case "tools/list":
		return s.handleToolsList(request)
	case "tools/call":
		return s.handleToolsCall(ctx, request)
	case "resources/list":
		return s.handleResourcesList(request)
	case "resources/read":
		return s.handleResourcesRead(ctx, request)
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: "Method not found",
				Data:    fmt.Sprintf("Unknown method: %s", request.Method),
			},
		}
	}
}

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(request *MCPRequest) *MCPResponse {
	result := map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{
				"listChanged": true,
			},
			"resources": map[string]interface{}{
				"subscribe":   true,
				"listChanged": true,
			},
		},
		"serverInfo": map[string]interface{}{
			"name":    "kinship-mcp",
			"version": "1.0.0",
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  result,
	}
}

// handleToolsList handles the tools/list request
func (s *Server) handleToolsList(request *MCPRequest) *MCPResponse {
	defs := s.tools.GetToolDefinitions()

	result := map[string]interface{}{
		"tools": defs,
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  result,
	}
}

// handleToolsCall handles the tools/call request
func (s *Server) handleToolsCall(ctx context.Context, request *MCPRequest) *MCPResponse {
	params, ok := request.Params.(map[string]interface{})
	if !ok {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32602,
				Message: "Invalid params",
				Data:    "Expected object with 'name' and 'arguments'",
			},
		}
	}

	toolName, ok := params["name"].(string)
	if !ok {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32602,
				Message: "Invalid params",
				Data:    "Missing or invalid 'name' field",
			},
		}
	}

	arguments, ok := params["arguments"].(map[string]interface{})
	if !ok {
		arguments = make(map[string]interface{})
	}

	result, err := s.tools.CallTool(ctx, toolName, arguments)
	if err != nil {
		s.log.Warn("tool execution error", "tool", toolName, "error", err)
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32603,
				Message: "Tool execution error",
				Data:    err.Error(),
			},
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  result,
	}
}

// handleResourcesList handles the resources/list request
func (s *Server) handleResourcesList(request *MCPRequest) *MCPResponse {
	resources := []map[string]interface{}{
		{
			"uri":         "kinship://reference/rules",
			"name":        "Derived Relationship Rules",
			"description": "The fixed set of derived kinship predicates (father_of, sibling_of, cousin_of, ...) this engine computes over the stored ground facts.",
			"mimeType":    "text/plain",
		},
	}

	result := map[string]interface{}{
		"resources": resources,
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  result,
	}
}

// handleResourcesRead handles the resources/read request
func (s *Server) handleResourcesRead(ctx context.Context, request *MCPRequest) *MCPResponse {
	params, ok := request.Params.(map[string]interface{})
	if !ok {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32602,
				Message: "Invalid params",
				Data:    "Expected object with 'uri'",
			},
		}
	}

	uri, ok := params["uri"].(string)
	if !ok {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32602,
				Message: "Invalid params",
				Data:    "Missing or invalid 'uri' field",
			},
		}
	}

	content, err := s.getResourceContent(uri)
	if err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      request.ID,
			Error: &MCPError{
				Code:    -32603,
				Message: "Resource not found",
				Data:    err.Error(),
			},
		}
	}

	result := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"uri":      uri,
				"mimeType": "text/plain",
				"text":     content,
			},
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  result,
	}
}

// getResourceContent returns the content for a given resource URI
func (s *Server) getResourceContent(uri string) (string, error) {
	switch {
	case strings.HasSuffix(uri, "rules"):
		return kinship.RulesReference(), nil
	default:
		return "", fmt.Errorf("unknown resource URI: %s", uri)
	}
}
