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

type renameCmd struct{}

func (renameCmd) Name() string        { return "rename" }
func (renameCmd) Description() string { return "Rename a file (needs write access)" }
func (renameCmd) Usage() string       { return "rename <file-id> <new-name>" }

func (renameCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/files/" + args[0] + "/rename"
	resp, body, err := api.PutJSON(endpoint, map[string]string{"new_name": args[1]}, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rr struct {
		File fileInfo `json:"file"`
	}
	_ = json.Unmarshal(body, &rr)
	fmt.Fprintf(Out, "Renamed to %s\n", rr.File.Name)
	return nil
}

func init() { RegisterCmd(renameCmd{}) }
