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

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/auth/login"
	resp, body, err := api.PostJSON(endpoint, credentials{Login: args[0], Password: args[1]}, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		if err := api.PersistAuthFromResponse(resp); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		fmt.Fprintln(Out, "Logged in successfully")
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("invalid login or password")
	}
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(loginCmd{}) }
