package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Set in main before the server starts.
var vault *Vault

const dateLayout = "2006-01-02"

// Input types

type SearchNotesInput struct {
	Query string `json:"query" jsonschema:"text to search for in the vault's markdown notes"`
}

type ReadNoteInput struct {
	Filename string `json:"filename" jsonschema:"path of the note, e.g. 'Daily Notes/2024-01-01.md'; the .md extension is optional"`
}

type DailyNoteInput struct {
	Date string `json:"date,omitempty" jsonschema:"optional date in YYYY-MM-DD format, defaults to today"`
}

type AppendTodoInput struct {
	Text string `json:"text" jsonschema:"the to-do text to append"`
	Date string `json:"date,omitempty" jsonschema:"optional date in YYYY-MM-DD format, defaults to today"`
}

// Output types

type SearchNotesOutput struct {
	Paths []string `json:"paths" jsonschema:"paths of matching notes"`
	Count int      `json:"count" jsonschema:"number of matching notes"`
}

type ReadNoteOutput struct {
	Filename string `json:"filename" jsonschema:"path of the note"`
	Content  string `json:"content" jsonschema:"the note content"`
}

type AppendTodoOutput struct {
	Success bool   `json:"success" jsonschema:"whether the to-do was added"`
	Message string `json:"message" jsonschema:"status message"`
}

// SearchNotes searches the vault's markdown notes.
func SearchNotes(ctx context.Context, req *mcp.CallToolRequest, input SearchNotesInput) (
	*mcp.CallToolResult,
	SearchNotesOutput,
	error,
) {
	if input.Query == "" {
		return nil, SearchNotesOutput{}, fmt.Errorf("query is required")
	}

	paths, err := vault.SearchNotes(ctx, input.Query)
	if err != nil {
		return nil, SearchNotesOutput{}, err
	}

	output := SearchNotesOutput{
		Paths: paths,
		Count: len(paths),
	}
	return nil, output, nil
}

// ReadNote reads a single note from the vault.
func ReadNote(ctx context.Context, req *mcp.CallToolRequest, input ReadNoteInput) (
	*mcp.CallToolResult,
	ReadNoteOutput,
	error,
) {
	if input.Filename == "" {
		return nil, ReadNoteOutput{}, fmt.Errorf("filename is required")
	}

	filename := input.Filename
	if !strings.HasSuffix(filename, ".md") {
		filename += ".md"
	}

	content, _, err := vault.ReadNote(ctx, filename)
	if err != nil {
		return nil, ReadNoteOutput{}, err
	}

	output := ReadNoteOutput{
		Filename: filename,
		Content:  content,
	}
	return nil, output, nil
}

// GetDailyNote reads the daily note for a date, today by default.
func GetDailyNote(ctx context.Context, req *mcp.CallToolRequest, input DailyNoteInput) (
	*mcp.CallToolResult,
	ReadNoteOutput,
	error,
) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, ReadNoteOutput{}, err
	}

	notePath := vault.DailyNotePath(date)
	content, _, err := vault.ReadNote(ctx, notePath)
	if err != nil {
		return nil, ReadNoteOutput{}, err
	}

	output := ReadNoteOutput{
		Filename: notePath,
		Content:  content,
	}
	return nil, output, nil
}

// AppendTodo appends a to-do line to a daily note.
func AppendTodo(ctx context.Context, req *mcp.CallToolRequest, input AppendTodoInput) (
	*mcp.CallToolResult,
	AppendTodoOutput,
	error,
) {
	if input.Text == "" {
		return nil, AppendTodoOutput{}, fmt.Errorf("text is required")
	}

	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, AppendTodoOutput{}, err
	}

	if err := vault.AppendTodo(ctx, date, input.Text); err != nil {
		return nil, AppendTodoOutput{}, err
	}

	output := AppendTodoOutput{
		Success: true,
		Message: fmt.Sprintf("Added to-do to the daily note for %s", date),
	}
	return nil, output, nil
}

// resolveDate validates an explicit date or defaults to today.
func resolveDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("date must be in YYYY-MM-DD format, got %q", date)
	}
	return date, nil
}
