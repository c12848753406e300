// Package storage is a thin client for the object store holding the
// intermediate transcription audio. Objects live only for the duration of
// one transcription job.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Config holds object store settings.
type Config struct {
	Endpoint string // base URL, default https://storage.googleapis.com
	Bucket   string
	Token    string // bearer token
}

// Client uploads and deletes blobs by name within the configured bucket.
type Client struct {
	config Config
	http   *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://storage.googleapis.com"
	}
	return &Client{
		config: cfg,
		// uploads of long recordings can be slow
		http: &http.Client{Timeout: time.Hour},
	}
}

// Upload streams the local file into the bucket under name and returns the
// object URI the speech service consumes.
func (c *Client) Upload(ctx context.Context, localPath, name string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	uploadURL := fmt.Sprintf("%s/upload/storage/v1/b/%s/o?uploadType=media&name=%s",
		c.config.Endpoint, url.PathEscape(c.config.Bucket), url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, f)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "audio/flac")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage upload error (status %d): %s", resp.StatusCode, string(body))
	}

	log.Printf("storage: uploaded %s as %s in %v", localPath, name, time.Since(start))
	return fmt.Sprintf("gs://%s/%s", c.config.Bucket, name), nil
}

// Delete removes an object. Failures are returned but callers treat them as
// best-effort cleanup.
func (c *Client) Delete(ctx context.Context, name string) error {
	deleteURL := fmt.Sprintf("%s/storage/v1/b/%s/o/%s",
		c.config.Endpoint, url.PathEscape(c.config.Bucket), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage delete error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
