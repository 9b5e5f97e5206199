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

type fileInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type uploadResponse struct {
	Message string   `json:"message"`
	File    fileInfo `json:"file"`
}

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Upload a local file to the vault" }
func (uploadCmd) Usage() string       { return "upload <path>" }

func (uploadCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/files/upload"
	resp, body, err := api.UploadFile(endpoint, args[0], token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var ur uploadResponse
	switch resp.StatusCode {
	case http.StatusCreated:
		_ = json.Unmarshal(body, &ur)
		fmt.Fprintf(Out, "Uploaded: %s (id %s, %d bytes)\n", ur.File.Name, ur.File.ID, ur.File.Size)
		return nil
	case http.StatusConflict:
		// дубликат по содержимому: сервер вернул уже существующую запись
		_ = json.Unmarshal(body, &ur)
		fmt.Fprintf(Out, "Already in vault as %s (id %s)\n", ur.File.Name, ur.File.ID)
		return nil
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(uploadCmd{}) }
