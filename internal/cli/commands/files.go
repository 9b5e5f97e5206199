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

type filesCmd struct{}

func (filesCmd) Name() string        { return "files" }
func (filesCmd) Description() string { return "List files stored in the vault" }
func (filesCmd) Usage() string       { return "files" }

func (filesCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/files/list"
	resp, body, err := api.Do(http.MethodGet, endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var lr struct {
		Files      []fileInfo `json:"files"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &lr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(lr.Files) == 0 {
		fmt.Fprintln(Out, "Vault is empty")
		return nil
	}
	for _, f := range lr.Files {
		fmt.Fprintf(Out, "- %s  %s  (%d bytes)\n", f.ID, f.Name, f.Size)
	}
	fmt.Fprintf(Out, "Total: %d\n", lr.Pagination.Total)
	return nil
}

func init() { RegisterCmd(filesCmd{}) }
