package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/riji/internal/constants"
	"github.com/julianstephens/riji/internal/search"
)

// RegisterReadTools adds the read-only journal tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, j *Journal) {
	s.AddTool(listEntriesTool(), listEntriesHandler(j))
	s.AddTool(getEntryTool(), getEntryHandler(j))
	s.AddTool(searchEntriesTool(), searchEntriesHandler(j))
	s.AddTool(listTagsTool(), listTagsHandler(j))
}

// --- list_entries ---

func listEntriesTool() mcp.Tool {
	return mcp.NewTool("list_entries",
		mcp.WithDescription("List journal entries, newest title date first. Optionally filter by a substring of title or content and by tag."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring to look for in title or content"),
		),
		mcp.WithString("tag",
			mcp.Description("Only entries carrying this tag"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return. Omit for all."),
		),
	)
}

func listEntriesHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term := req.GetString("search", "")
		tag := req.GetString("tag", "")
		limit := req.GetInt("limit", 0)

		j.mu.Lock()
		entries := j.store.FilterAndSort(term, tag)
		j.mu.Unlock()

		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No entries."), nil
		}
		return jsonResult(entries)
	}
}

// --- get_entry ---

func getEntryTool() mcp.Tool {
	return mcp.NewTool("get_entry",
		mcp.WithDescription("Get a single journal entry by id."),
		mcp.WithString("id",
			mcp.Description("Entry id (number or numeric string)"),
			mcp.Required(),
		),
	)
}

func getEntryHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := entryID(req)
		if err != nil {
			return toolError(err)
		}

		j.mu.Lock()
		e, ok := j.store.Find(id)
		j.mu.Unlock()

		if !ok {
			return toolError(fmt.Errorf("entry not found: %d", id))
		}
		return jsonResult(e)
	}
}

// --- search_entries ---

type searchHit struct {
	ID    int64    `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Score float64  `json:"score"`
}

func searchEntriesTool() mcp.Tool {
	return mcp.NewTool("search_entries",
		mcp.WithDescription("Ranked full-text search over titles, tags and content. Understands Chinese text without spaces."),
		mcp.WithString("query",
			mcp.Description("Words to search for"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default %d)", constants.DefaultSearchLimit)),
		),
	)
}

func searchEntriesHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := req.GetString("query", "")
		if q == "" {
			return toolError(fmt.Errorf("query must not be empty"))
		}
		limit := req.GetInt("limit", constants.DefaultSearchLimit)

		j.mu.Lock()
		entries := j.store.Entries()
		j.mu.Unlock()

		hits, err := search.Query(entries, q, limit)
		if err != nil {
			return toolError(err)
		}
		if len(hits) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}

		out := make([]searchHit, 0, len(hits))
		for _, h := range hits {
			out = append(out, searchHit{
				ID:    h.Entry.ID,
				Title: h.Entry.Title,
				Tags:  h.Entry.EffectiveTags(),
				Score: h.Score,
			})
		}
		return jsonResult(out)
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in the journal with the number of entries carrying it."),
	)
}

func listTagsHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		j.mu.Lock()
		counts := j.store.Tags()
		j.mu.Unlock()

		if len(counts) == 0 {
			return mcp.NewToolResultText("No tags."), nil
		}
		type tagCount struct {
			Tag   string `json:"tag"`
			Count int    `json:"count"`
		}
		out := make([]tagCount, 0, len(counts))
		for _, c := range counts {
			out = append(out, tagCount{Tag: c.Tag, Count: c.Count})
		}
		return jsonResult(out)
	}
}
