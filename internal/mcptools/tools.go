// Package mcptools exposes the journal to MCP clients over the mcp-go server.
package mcptools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/riji/internal/journal"
)

// Journal serializes tool calls onto a single store. The stdio server may
// run handlers concurrently; journal.Store is not safe for that.
type Journal struct {
	mu    sync.Mutex
	store *journal.Store
}

func NewJournal(store *journal.Store) *Journal {
	return &Journal{store: store}
}

func (j *Journal) now() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.store.Now()
}

// Register adds every journal tool to s
func Register(s *server.MCPServer, j *Journal) {
	RegisterReadTools(s, j)
	RegisterWriteTools(s, j)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("failed to encode result: %w", err))
	}
	return mcp.NewToolResultText(string(data)), nil
}

// entryID reads the "id" argument. Clients send it as a JSON number or,
// to avoid float rounding, as a string.
func entryID(req mcp.CallToolRequest) (int64, error) {
	raw, ok := req.GetArguments()["id"]
	if !ok {
		return 0, fmt.Errorf("missing required argument: id")
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid id %v: must be a whole number", v)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("invalid id type %T", raw)
	}
}

// hasArg reports whether the client supplied key at all, so an explicit
// empty value can be told apart from an omitted one.
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}
