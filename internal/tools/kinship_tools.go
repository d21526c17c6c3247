// Package tools exposes the kinship reasoning engine as a set of MCP tool
// calls, grounded on the teacher's tools.LogicTools (GetToolDefinitions /
// CallTool) shape.
package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/kinbase/kinship-mcp/internal/kinship"
)

// KinshipTools wraps the session registry (SPEC component J) and exposes
// it as MCP tools. It plays the role the teacher's LogicTools plays for
// prolog.Engine: a thin, argument-decoding layer over the engine's real
// API (kinship.Process, kinship.Export, kinship.Import).
type KinshipTools struct {
	log hclog.Logger

	mu       sync.Mutex
	sessions map[string]*kinship.SessionState
	nextID   uint64
}

// NewKinshipTools returns a KinshipTools with an empty session registry.
func NewKinshipTools(log hclog.Logger) *KinshipTools {
	return &KinshipTools{
		log:      log.Named("tools"),
		sessions: make(map[string]*kinship.SessionState),
	}
}

func (t *KinshipTools) newSessionID() string {
	t.nextID++
	return fmt.Sprintf("session-%d", t.nextID)
}

func (t *KinshipTools) createSession() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.newSessionID()
	t.sessions[id] = kinship.NewSessionState()
	return id
}

func (t *KinshipTools) get(id string) (*kinship.SessionState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[id]
	return s, ok
}

func (t *KinshipTools) put(id string, s *kinship.SessionState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[id] = s
}

// GetToolDefinitions returns the MCP tool schema list, the shape expected
// by tools/list responses.
func (t *KinshipTools) GetToolDefinitions() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name":        "kinship_new_session",
			"description": "Allocate a new family-relationship session with an empty fact store.",
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			"name":        "kinship_tell",
			"description": "Tell the engine a relationship statement (e.g. \"Alice is the mother of Bob.\"). May return a clarifying question if the statement is ambiguous.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": map[string]interface{}{"type": "string"},
					"statement":  map[string]interface{}{"type": "string"},
				},
				"required": []string{"session_id", "statement"},
			},
		},
		{
			"name":        "kinship_ask",
			"description": "Ask the engine a relationship question (e.g. \"Who are the siblings of Alice?\").",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": map[string]interface{}{"type": "string"},
					"question":   map[string]interface{}{"type": "string"},
				},
				"required": []string{"session_id", "question"},
			},
		},
		{
			"name":        "kinship_export_session",
			"description": "Export a session's fact store as the flat, human-readable text layout (facts newest-first, plus an informational rule listing).",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": map[string]interface{}{"type": "string"},
				},
				"required": []string{"session_id"},
			},
		},
		{
			"name":        "kinship_import_session",
			"description": "Create a new session from a previously exported text layout.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{"type": "string"},
				},
				"required": []string{"text"},
			},
		},
		{
			"name":        "kinship_reset_session",
			"description": "Clear a session's fact store and any pending clarification.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": map[string]interface{}{"type": "string"},
				},
				"required": []string{"session_id"},
			},
		},
	}
}

// CallTool dispatches a decoded tools/call request to the matching engine
// operation.
func (t *KinshipTools) CallTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	switch name {
	case "kinship_new_session":
		return t.callNewSession()
	case "kinship_tell":
		return t.callTurn(ctx, args, "statement")
	case "kinship_ask":
		return t.callTurn(ctx, args, "question")
	case "kinship_export_session":
		return t.callExportSession(args)
	case "kinship_import_session":
		return t.callImportSession(args)
	case "kinship_reset_session":
		return t.callResetSession(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (t *KinshipTools) callNewSession() (interface{}, error) {
	id := t.createSession()
	t.log.Debug("allocated session", "session_id", id)
	return map[string]interface{}{"session_id": id}, nil
}

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

// callTurn backs both kinship_tell and kinship_ask: the engine's Process
// recognizes statement vs. question syntax itself, so both tools funnel
// into the same turn, differing only in which input field they read and
// the log line they emit.
func (t *KinshipTools) callTurn(ctx context.Context, args map[string]interface{}, field string) (interface{}, error) {
	sessionID, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	input, err := stringArg(args, field)
	if err != nil {
		return nil, err
	}
	session, ok := t.get(sessionID)
	if !ok {
		return nil, fmt.Errorf("unknown session_id: %s", sessionID)
	}

	reply, err := kinship.Process(ctx, input, session)
	if err != nil {
		return nil, fmt.Errorf("processing turn: %w", err)
	}
	t.log.Debug("processed turn", "session_id", sessionID, "field", field, "pending", session.Pending != nil)
	return map[string]interface{}{"reply": reply}, nil
}

func (t *KinshipTools) callExportSession(args map[string]interface{}) (interface{}, error) {
	sessionID, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	session, ok := t.get(sessionID)
	if !ok {
		return nil, fmt.Errorf("unknown session_id: %s", sessionID)
	}
	return map[string]interface{}{"text": kinship.Export(session.Store)}, nil
}

func (t *KinshipTools) callImportSession(args map[string]interface{}) (interface{}, error) {
	text, err := stringArg(args, "text")
	if err != nil {
		return nil, err
	}
	store, err := kinship.Import(text)
	if err != nil {
		return nil, fmt.Errorf("importing session text: %w", err)
	}
	id := t.newSessionIDLocked()
	t.put(id, &kinship.SessionState{Store: store})
	t.log.Debug("imported session", "session_id", id)
	return map[string]interface{}{"session_id": id}, nil
}

func (t *KinshipTools) newSessionIDLocked() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.newSessionID()
}

func (t *KinshipTools) callResetSession(args map[string]interface{}) (interface{}, error) {
	sessionID, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	if _, ok := t.get(sessionID); !ok {
		return nil, fmt.Errorf("unknown session_id: %s", sessionID)
	}
	t.put(sessionID, kinship.NewSessionState())
	t.log.Debug("reset session", "session_id", sessionID)
	return map[string]interface{}{"status": "reset"}, nil
}
