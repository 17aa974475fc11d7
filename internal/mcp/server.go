package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/oyin-bo/lexigen/internal/logging"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// maxMessageBytes bounds a single request line
const maxMessageBytes = 4 << 20

// Server implements the MCP protocol server
type Server struct {
	name    string
	version string
	tools   map[string]Tool
	logger  *slog.Logger
}

// NewServer creates a new MCP server
func NewServer(name, version string) *Server {
	return &Server{
		name:    name,
		version: version,
		tools:   make(map[string]Tool),
		logger:  logging.WithComponent("mcp"),
	}
}

// RegisterTool exposes a tool to clients
func (s *Server) RegisterTool(tool Tool) {
	s.tools[tool.Name()] = tool
}

// Serve reads one JSON-RPC message per line from r and writes responses
// to w until r is exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxMessageBytes)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, errors.IOError, "Failed to read request")
			}
			// EOF reached
			return nil
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handleMessage(ctx, line)
		if resp == nil {
			continue
		}
		if err := writeResponse(w, resp); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, line []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return newError(nil, ParseError, "Invalid JSON", nil)
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return newError(req.ID, InvalidRequest, "Invalid JSON-RPC request", nil)
	}

	s.logger.Debug("Request", "method", req.Method)
	return s.dispatch(ctx, &req)
}

func writeResponse(w io.Writer, resp *JSONRPCResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, errors.InternalError, "Failed to marshal response")
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return errors.Wrap(err, errors.IOError, "Failed to write response")
	}
	return nil
}

// dispatch routes requests to appropriate handlers
func (s *Server) dispatch(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return newResult(req.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    ServerCapabilities{Tools: struct{}{}},
			ServerInfo:      ServerInfo{Name: s.name, Version: s.version},
		})
	case "notifications/initialized":
		// Notification, no response
		return nil
	case "tools/list":
		return newResult(req.ID, s.listTools())
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return newError(req.ID, MethodNotFound, fmt.Sprintf("Method '%s' not found", req.Method), nil)
	}
}

func (s *Server) listTools() ListToolsResult {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	result := ListToolsResult{Tools: []ToolInfo{}}
	for _, name := range names {
		t := s.tools[name]
		result.Tools = append(result.Tools, ToolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return result
}

// handleToolsCall runs a tool. Tool failures are reported in the result
// with isError set; only malformed calls are protocol errors.
func (s *Server) handleToolsCall(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return newError(req.ID, InvalidParams, "Invalid tool call parameters", nil)
	}

	tool, ok := s.tools[params.Name]
	if !ok {
		return newError(req.ID, InvalidParams, fmt.Sprintf("Unknown tool '%s'", params.Name), nil)
	}

	args := params.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	text, err := tool.Call(ctx, args)
	if err != nil {
		s.logger.Warn("Tool failed", "tool", params.Name, "error", err)
		var e *errors.Error
		if stderrors.As(err, &e) {
			text = fmt.Sprintf("%s: %s", e.Code, e.Message)
			if cause := e.Unwrap(); cause != nil {
				text = fmt.Sprintf("%s: %v", text, cause)
			}
		} else {
			text = err.Error()
		}
		return newResult(req.ID, ToolResult{
			Content: []ContentItem{{Type: "text", Text: text}},
			IsError: true,
		})
	}

	return newResult(req.ID, ToolResult{
		Content: []ContentItem{{Type: "text", Text: text}},
	})
}
