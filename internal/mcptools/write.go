package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/riji/internal/classifier"
	"github.com/julianstephens/riji/internal/importer"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
)

// RegisterWriteTools adds the journal tools that change entries.
func RegisterWriteTools(s *server.MCPServer, j *Journal) {
	s.AddTool(createEntryTool(), createEntryHandler(j))
	s.AddTool(updateEntryTool(), updateEntryHandler(j))
	s.AddTool(deleteEntryTool(), deleteEntryHandler(j))
	s.AddTool(importTextTool(), importTextHandler(j))
}

func moodDescription() string {
	var names []string
	for _, m := range models.Moods {
		names = append(names, fmt.Sprintf("%s (%s)", m, m.Name()))
	}
	return fmt.Sprintf("Mood marker or its English name: %v", names)
}

// --- create_entry ---

func createEntryTool() mcp.Tool {
	return mcp.NewTool("create_entry",
		mcp.WithDescription("Write a new journal entry. Tags and mood are inferred from the content when omitted."),
		mcp.WithString("title",
			mcp.Description("Entry title, conventionally starting with a date such as 2025年6月14日. Defaults to today's date."),
		),
		mcp.WithString("content",
			mcp.Description("Entry text"),
			mcp.Required(),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags, the first being the primary category"),
			mcp.WithStringItems(),
		),
		mcp.WithString("mood",
			mcp.Description(moodDescription()),
		),
	)
}

func createEntryHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content := req.GetString("content", "")

		title := req.GetString("title", "")
		if title == "" {
			title = titledate.Title(j.now())
		}

		tags := req.GetStringSlice("tags", nil)
		if len(tags) == 0 {
			tags = classifier.Tags(content)
		}

		mood := classifier.Mood(content)
		if raw := req.GetString("mood", ""); raw != "" {
			m, err := models.ParseMood(raw)
			if err != nil {
				return toolError(err)
			}
			mood = m
		}

		j.mu.Lock()
		e, err := j.store.Create(journal.Draft{Title: title, Tags: tags, Content: content, Mood: mood})
		j.mu.Unlock()

		if err != nil {
			return toolError(err)
		}
		return jsonResult(e)
	}
}

// --- update_entry ---

func updateEntryTool() mcp.Tool {
	return mcp.NewTool("update_entry",
		mcp.WithDescription("Edit an existing entry. Omitted fields keep their current value."),
		mcp.WithString("id",
			mcp.Description("Entry id (number or numeric string)"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("content",
			mcp.Description("New text"),
		),
		mcp.WithArray("tags",
			mcp.Description("Replacement tag list"),
			mcp.WithStringItems(),
		),
		mcp.WithString("mood",
			mcp.Description(moodDescription()),
		),
	)
}

func updateEntryHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := entryID(req)
		if err != nil {
			return toolError(err)
		}

		j.mu.Lock()
		defer j.mu.Unlock()

		current, ok := j.store.Find(id)
		if !ok {
			return toolError(fmt.Errorf("entry not found: %d", id))
		}

		d := journal.Draft{
			Title:   current.Title,
			Tags:    current.EffectiveTags(),
			Content: current.Content,
			Mood:    current.Mood,
		}
		if hasArg(req, "title") {
			d.Title = req.GetString("title", "")
		}
		if hasArg(req, "content") {
			d.Content = req.GetString("content", "")
		}
		if hasArg(req, "tags") {
			d.Tags = req.GetStringSlice("tags", nil)
		}
		if hasArg(req, "mood") {
			m, err := models.ParseMood(req.GetString("mood", ""))
			if err != nil {
				return toolError(err)
			}
			d.Mood = m
		}

		e, err := j.store.Update(id, d)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(e)
	}
}

// --- delete_entry ---

func deleteEntryTool() mcp.Tool {
	return mcp.NewTool("delete_entry",
		mcp.WithDescription("Delete a journal entry by id."),
		mcp.WithString("id",
			mcp.Description("Entry id (number or numeric string)"),
			mcp.Required(),
		),
	)
}

func deleteEntryHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := entryID(req)
		if err != nil {
			return toolError(err)
		}

		j.mu.Lock()
		removed, err := j.store.Delete(id)
		j.mu.Unlock()

		if err != nil {
			return toolError(err)
		}
		if !removed {
			return toolError(fmt.Errorf("entry not found: %d", id))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted entry %d", id)), nil
	}
}

// --- import_text ---

func importTextTool() mcp.Tool {
	return mcp.NewTool("import_text",
		mcp.WithDescription("Import diary text. Each line starting with a date like 2025年6月14日 begins a new entry; following lines are its content."),
		mcp.WithString("text",
			mcp.Description("The diary text to import"),
			mcp.Required(),
		),
	)
}

func importTextHandler(j *Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")
		candidates := importer.Parse(text, j.now())

		j.mu.Lock()
		res, err := j.store.Import(candidates)
		j.mu.Unlock()

		if err != nil {
			return toolError(err)
		}
		if res.Outcome() == importer.OutcomeNoData {
			return mcp.NewToolResultError(res.Message()), nil
		}
		return mcp.NewToolResultText(res.Message()), nil
	}
}
