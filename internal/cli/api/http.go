package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"FileVault/internal/cli/auth"
)

const authCookie = "vault_token"

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(url string, payload any, token string) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req, token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// Do sends a bodyless request (GET/DELETE) with optional auth cookie.
func Do(method, url, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, nil, err
	}
	addAuth(req, token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// PutJSON sends a JSON PUT request with optional auth cookie.
func PutJSON(url string, payload any, token string) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req, token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// UploadFile streams a local file as multipart/form-data field "file".
func UploadFile(url, path, token string) (*http.Response, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, nil, err
	}
	if err := w.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	addAuth(req, token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// DownloadToFile streams the response body to dst. Returns the response for status inspection.
func DownloadToFile(url, dst, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	addAuth(req, token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return resp, fmt.Errorf("server status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	out, err := os.Create(dst)
	if err != nil {
		return resp, err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return resp, err
	}
	return resp, nil
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в файловое хранилище.
func PersistAuthFromResponse(resp *http.Response) error {
	for _, c := range resp.Cookies() {
		if c.Name == authCookie && c.Value != "" {
			return auth.SaveToken(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}

func addAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Cookie", authCookie+"="+token)
	}
}
