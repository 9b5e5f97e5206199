package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"FileVault/internal/cli/api"
	"FileVault/internal/cli/auth"
	"FileVault/internal/config"
)

type shareInfo struct {
	ID         string    `json:"id"`
	File       *fileInfo `json:"file"`
	Owner      string    `json:"owner"`
	SharedWith string    `json:"shared_with"`
	Permission string    `json:"permission"`
	ExpiresAt  *string   `json:"expires_at"`
}

func listShares(cfg *config.Config, path string) ([]shareInfo, error) {
	token, err := auth.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + path
	resp, body, err := api.Do(http.MethodGet, endpoint, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var sr struct {
		Shares []shareInfo `json:"shares"`
	}
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return sr.Shares, nil
}

type sharesCmd struct{}

func (sharesCmd) Name() string        { return "shares" }
func (sharesCmd) Description() string { return "List access you granted on your files" }
func (sharesCmd) Usage() string       { return "shares" }

func (sharesCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	shares, err := listShares(cfg, "/sharing/my-shares")
	if err != nil {
		return err
	}
	if len(shares) == 0 {
		fmt.Fprintln(Out, "No shares granted")
		return nil
	}
	for _, s := range shares {
		name := "?"
		if s.File != nil {
			name = s.File.Name
		}
		fmt.Fprintf(Out, "- %s  %s -> %s  (%s)\n", s.ID, name, s.SharedWith, s.Permission)
	}
	return nil
}

func init() { RegisterCmd(sharesCmd{}) }

type inboxCmd struct{}

func (inboxCmd) Name() string        { return "inbox" }
func (inboxCmd) Description() string { return "List files other users shared with you" }
func (inboxCmd) Usage() string       { return "inbox" }

func (inboxCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	shares, err := listShares(cfg, "/sharing/shared-with-me")
	if err != nil {
		return err
	}
	if len(shares) == 0 {
		fmt.Fprintln(Out, "Nothing shared with you")
		return nil
	}
	for _, s := range shares {
		name, id := "?", "?"
		if s.File != nil {
			name, id = s.File.Name, s.File.ID
		}
		fmt.Fprintf(Out, "- %s  %s  from %s  (%s)\n", id, name, s.Owner, s.Permission)
	}
	return nil
}

func init() { RegisterCmd(inboxCmd{}) }
