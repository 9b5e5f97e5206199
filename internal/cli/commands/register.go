package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"FileVault/internal/cli/api"
	"FileVault/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/auth/register"
	resp, body, err := api.PostJSON(endpoint, credentials{Login: args[0], Password: args[1]}, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusCreated {
		if err := api.PersistAuthFromResponse(resp); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		fmt.Fprintln(Out, "Registered successfully")
		return nil
	}
	if resp.StatusCode == http.StatusConflict {
		return errors.New("login already in use")
	}
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(registerCmd{}) }
