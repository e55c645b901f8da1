// Package gist stores the document as a single file inside a GitHub Gist.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/vlnch/anonbox/blob"
)

const (
	apiBase        = "https://api.github.com"
	acceptHeader   = "application/vnd.github+json"
	requestTimeout = 10 * time.Second
)

type GistTransport struct {
	client   *http.Client
	baseURL  string
	gistId   string
	fileName string
}

func NewGistTransport(ctx context.Context, token string, gistId string, fileName string) (*GistTransport, error) {
	if token == "" {
		return nil, fmt.Errorf("gist: token is required")
	}
	if gistId == "" || fileName == "" {
		return nil, fmt.Errorf("gist: gist id and file name are required")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = requestTimeout

	return &GistTransport{client: client, baseURL: apiBase, gistId: gistId, fileName: fileName}, nil
}

// gistFile mirrors the subset of the Gist API file object we read and write.
type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
}

type gistPayload struct {
	Files map[string]gistFile `json:"files"`
}

func (g *GistTransport) Get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/gists/"+g.gistId, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gist get failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, blob.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gist get failed: status %d", resp.StatusCode)
	}

	var payload gistPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("gist get failed: %w", err)
	}

	file, ok := payload.Files[g.fileName]
	if !ok || file.Content == "" {
		return nil, blob.ErrNotFound
	}

	return []byte(file.Content), nil
}

func (g *GistTransport) Patch(ctx context.Context, content []byte) error {
	payload := gistPayload{
		Files: map[string]gistFile{
			g.fileName: {Content: string(content)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, g.baseURL+"/gists/"+g.gistId, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gist patch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gist patch failed: status %d", resp.StatusCode)
	}

	return nil
}
