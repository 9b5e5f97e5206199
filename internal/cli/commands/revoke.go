package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"FileVault/internal/cli/api"
	"FileVault/internal/cli/auth"
	"FileVault/internal/config"
)

type revokeCmd struct{}

func (revokeCmd) Name() string        { return "revoke" }
func (revokeCmd) Description() string { return "Revoke previously granted access" }
func (revokeCmd) Usage() string       { return "revoke <share-id>" }

func (revokeCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/sharing/revoke/" + args[0]
	resp, body, err := api.Do(http.MethodDelete, endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintln(Out, "Share revoked")
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("share not found")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(revokeCmd{}) }
