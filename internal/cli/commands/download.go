package commands

import (
	"context"
	"fmt"
	"strings"

	"FileVault/internal/cli/api"
	"FileVault/internal/cli/auth"
	"FileVault/internal/config"
)

type downloadCmd struct{}

func (downloadCmd) Name() string { return "download" }
func (downloadCmd) Description() string {
	return "Download a file (own or shared with you) to a local path"
}
func (downloadCmd) Usage() string { return "download <file-id> <dest-path>" }

func (downloadCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/files/" + args[0] + "/download"
	if _, err := api.DownloadToFile(endpoint, args[1], token); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved to %s\n", args[1])
	return nil
}

func init() { RegisterCmd(downloadCmd{}) }
