package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-github/v45/github"
	"golang.org/x/oauth2"
)

// maxSearchResults caps how many note paths a search returns.
const maxSearchResults = 15

// ErrNoteNotFound reports that a note path does not exist in the vault.
var ErrNoteNotFound = errors.New("note not found")

// Vault reads and updates an Obsidian vault synced to a GitHub repository,
// so notes stay reachable without the owner's machine being online.
type Vault struct {
	client   *github.Client
	owner    string
	repo     string
	dailyDir string
}

// NewVault builds a vault over the GitHub API. repoSlug is "owner/repo";
// dailyDir is the folder holding daily notes, empty for the vault root.
func NewVault(ctx context.Context, token, repoSlug, dailyDir string) (*Vault, error) {
	owner, repo, ok := strings.Cut(repoSlug, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("vault repository must be in owner/repo format, got %q", repoSlug)
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, source)

	return &Vault{
		client:   github.NewClient(httpClient),
		owner:    owner,
		repo:     repo,
		dailyDir: dailyDir,
	}, nil
}

// SearchNotes finds markdown notes matching the query via GitHub code
// search and returns their paths.
func (v *Vault) SearchNotes(ctx context.Context, query string) ([]string, error) {
	q := fmt.Sprintf("%s repo:%s/%s extension:md", query, v.owner, v.repo)
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: maxSearchResults},
	}

	result, _, err := v.client.Search.Code(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("note search failed: %w", err)
	}

	paths := []string{}
	for _, item := range result.CodeResults {
		if len(paths) >= maxSearchResults {
			break
		}
		paths = append(paths, item.GetPath())
	}
	return paths, nil
}

// ReadNote fetches a note and returns its decoded content together with the
// blob SHA needed for updates.
func (v *Vault) ReadNote(ctx context.Context, notePath string) (string, string, error) {
	file, _, resp, err := v.client.Repositories.GetContents(ctx, v.owner, v.repo, notePath, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", "", fmt.Errorf("%q: %w", notePath, ErrNoteNotFound)
		}
		return "", "", fmt.Errorf("failed to fetch note %q: %w", notePath, err)
	}
	if file == nil {
		return "", "", fmt.Errorf("%q is a directory, not a note", notePath)
	}

	// Content is absent for blobs over 1MB; notes should never get there.
	content, err := file.GetContent()
	if err != nil {
		return "", "", fmt.Errorf("content of %q not available (too large?): %w", notePath, err)
	}
	return content, file.GetSHA(), nil
}

// AppendTodo appends an unchecked todo line to the daily note for the given
// date and commits the change.
func (v *Vault) AppendTodo(ctx context.Context, date, text string) error {
	notePath := v.DailyNotePath(date)

	content, sha, err := v.ReadNote(ctx, notePath)
	if err != nil {
		return err
	}

	updated := content + "\n- [ ] " + text
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(fmt.Sprintf("Add todo: %s", text)),
		Content: []byte(updated),
		SHA:     github.String(sha),
	}

	if _, _, err := v.client.Repositories.UpdateFile(ctx, v.owner, v.repo, notePath, opts); err != nil {
		return fmt.Errorf("failed to update note %q: %w", notePath, err)
	}
	return nil
}

// DailyNotePath returns the vault path of the daily note for a date.
func (v *Vault) DailyNotePath(date string) string {
	return path.Join(v.dailyDir, date+".md")
}
