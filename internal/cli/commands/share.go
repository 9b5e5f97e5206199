package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"FileVault/internal/cli/api"
	"FileVault/internal/cli/auth"
	"FileVault/internal/config"
)

type shareCmd struct{}

func (shareCmd) Name() string        { return "share" }
func (shareCmd) Description() string { return "Grant another user access to your file" }
func (shareCmd) Usage() string       { return "share <file-id> <username> [read|write|delete] [days]" }

func (shareCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrUsage
	}
	permission := "read"
	if len(args) >= 3 {
		permission = args[2]
	}
	days := 0
	if len(args) == 4 {
		d, err := strconv.Atoi(args[3])
		if err != nil || d < 0 {
			return ErrUsage
		}
		days = d
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	payload := map[string]any{
		"file_id":      args[0],
		"username":     args[1],
		"permission":   permission,
		"expires_days": days,
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/sharing/share"
	resp, body, err := api.PostJSON(endpoint, payload, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr struct {
		Share struct {
			ID        string  `json:"id"`
			ExpiresAt *string `json:"expires_at"`
		} `json:"share"`
	}
	_ = json.Unmarshal(body, &sr)
	fmt.Fprintf(Out, "Shared with %s (%s), share id %s\n", args[1], permission, sr.Share.ID)
	if sr.Share.ExpiresAt != nil {
		fmt.Fprintf(Out, "Expires at %s\n", *sr.Share.ExpiresAt)
	}
	return nil
}

func init() { RegisterCmd(shareCmd{}) }
