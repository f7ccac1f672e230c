package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	token := os.Getenv("GITHUB_PERSONAL_TOKEN")
	repo := os.Getenv("OBSIDIAN_GITHUB_REPO")
	if token == "" || repo == "" {
		log.Fatal().Msg("GITHUB_PERSONAL_TOKEN and OBSIDIAN_GITHUB_REPO environment variables are required")
	}
	dailyDir := os.Getenv("OBSIDIAN_DAILY_NOTE_DIR")

	ctx := context.Background()

	var err error
	vault, err = NewVault(ctx, token, repo, dailyDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure vault")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "obsidian", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "obsidian_search_notes",
		Description: "Search for notes in the GitHub-synced Obsidian vault by text",
	}, SearchNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "obsidian_read_note",
		Description: "Read the content of a specific note from the vault",
	}, ReadNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "obsidian_get_daily_note",
		Description: "Get the content of a daily note, today's by default",
	}, GetDailyNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "obsidian_append_todo",
		Description: "Append a to-do item to a daily note",
	}, AppendTodo)

	if addr := os.Getenv("MCP_HTTP_ADDR"); addr != "" {
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		log.Info().Str("addr", addr).Msg("serving Obsidian MCP over HTTP")
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal().Err(err).Msg("HTTP server exited")
		}
		return
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
