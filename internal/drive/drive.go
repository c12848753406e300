// Package drive is a thin client for the cloud drive holding the rendered
// minutes documents, chat logs, and history snapshots. Folders are looked
// up (or created) by name; files are uploaded via multipart requests.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	// DocMimeType is the content type of rendered minutes documents.
	DocMimeType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	JSONMimeType = "application/json"
)

// Config holds drive settings.
type Config struct {
	Endpoint string // base URL, default https://www.googleapis.com
	Token    string // bearer token
}

// File is one drive entry as returned by listings.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
}

// Client talks to the drive REST API.
type Client struct {
	config Config
	http   *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://www.googleapis.com"
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: 5 * time.Minute},
	}
}

// EnsureFolder returns the id of the named folder, creating it when absent.
func (c *Client) EnsureFolder(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false", folderMimeType, name)
	files, err := c.list(ctx, query, "files(id)", "")
	if err != nil {
		return "", fmt.Errorf("folder lookup: %w", err)
	}
	if len(files) > 0 {
		return files[0].ID, nil
	}

	meta := map[string]string{"name": name, "mimeType": folderMimeType}
	body, _ := json.Marshal(meta)

	var created File
	if err := c.call(ctx, http.MethodPost, c.config.Endpoint+"/drive/v3/files?fields=id",
		"application/json", bytes.NewReader(body), &created); err != nil {
		return "", fmt.Errorf("folder create: %w", err)
	}
	log.Printf("drive: created folder %q (%s)", name, created.ID)
	return created.ID, nil
}

// Upload writes content into the named folder and returns the file id.
func (c *Client) Upload(ctx context.Context, folderName, fileName, mimeType string, content []byte) (string, error) {
	folderID, err := c.EnsureFolder(ctx, folderName)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := writer.CreatePart(metaHeader)
	if err != nil {
		return "", fmt.Errorf("multipart metadata: %w", err)
	}
	meta := map[string]any{"name": fileName, "parents": []string{folderID}}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	dataHeader := textproto.MIMEHeader{}
	dataHeader.Set("Content-Type", mimeType)
	dataPart, err := writer.CreatePart(dataHeader)
	if err != nil {
		return "", fmt.Errorf("multipart content: %w", err)
	}
	if _, err := dataPart.Write(content); err != nil {
		return "", fmt.Errorf("write content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	uploadURL := c.config.Endpoint + "/upload/drive/v3/files?uploadType=multipart&fields=id"
	contentType := "multipart/related; boundary=" + writer.Boundary()

	var created File
	if err := c.call(ctx, http.MethodPost, uploadURL, contentType, &buf, &created); err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, err)
	}

	log.Printf("drive: uploaded %s into %q (%s)", fileName, folderName, created.ID)
	return created.ID, nil
}

// ListJSON returns the JSON files in the named folder, newest first.
func (c *Client) ListJSON(ctx context.Context, folderName string) ([]File, error) {
	folderID, err := c.EnsureFolder(ctx, folderName)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", folderID, JSONMimeType)
	return c.list(ctx, query, "files(id, name, createdTime)", "createdTime desc")
}

// Download fetches a file's content by id.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	downloadURL := fmt.Sprintf("%s/drive/v3/files/%s?alt=media", c.config.Endpoint, url.PathEscape(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive download error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

type listResponse struct {
	Files []File `json:"files"`
}

func (c *Client) list(ctx context.Context, query, fields, orderBy string) ([]File, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", fields)
	if orderBy != "" {
		params.Set("orderBy", orderBy)
	}

	var out listResponse
	listURL := c.config.Endpoint + "/drive/v3/files?" + params.Encode()
	if err := c.call(ctx, http.MethodGet, listURL, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

func (c *Client) call(ctx context.Context, method, rawURL, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("drive api error (status %d): %s", resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
