// Package basecamp is a thin client for the project-management REST API:
// project listing, per-project dock inspection, to-do list listing,
// attachment upload, and entity creation (to-do, board message, vault
// upload) referencing the uploaded attachment.
package basecamp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Tool types a minutes document can be posted into.
const (
	ToolTodos        = "To-dos"
	ToolMessageBoard = "Message Board"
	ToolDocsAndFiles = "Docs & Files"
)

// Config holds the account and OAuth client settings.
type Config struct {
	Endpoint     string // default https://3.basecampapi.com
	LaunchpadURL string // default https://launchpad.37signals.com
	AccountID    string
	ClientID     string
	ClientSecret string
	RefreshToken string
	UserAgent    string
}

// Project is one active Basecamp project.
type Project struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Dock   []Tool `json:"dock"`
}

// Tool is one dock entry (enabled tool) on a project.
type Tool struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"` // "todoset", "message_board", "vault", ...
	Enabled bool   `json:"enabled"`
}

// TodoList is one to-do list inside a project's todoset.
type TodoList struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Client talks to the Basecamp API with automatic access-token refresh.
type Client struct {
	config Config
	http   *http.Client
	tokens TokenSource
}

func NewClient(cfg Config, tokens TokenSource) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://3.basecampapi.com"
	}
	if cfg.LaunchpadURL == "" {
		cfg.LaunchpadURL = "https://launchpad.37signals.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Noted2 Meeting Minutes (noted@example.com)"
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: 2 * time.Minute},
		tokens: tokens,
	}
}

func (c *Client) base() string {
	return c.config.Endpoint + "/" + c.config.AccountID
}

// Projects lists the active projects sorted by name.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var all []Project
	if err := c.getJSON(ctx, c.base()+"/projects.json", &all); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	active := make([]Project, 0, len(all))
	for _, p := range all {
		if p.Status == "active" {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

// Dock returns the enabled-tool list for a project.
func (c *Client) Dock(ctx context.Context, projectID int64) ([]Tool, error) {
	var p Project
	url := fmt.Sprintf("%s/projects/%d.json", c.base(), projectID)
	if err := c.getJSON(ctx, url, &p); err != nil {
		return nil, fmt.Errorf("project dock: %w", err)
	}
	return p.Dock, nil
}

// FindTool returns the dock entry with the given name, or false.
func FindTool(dock []Tool, name string) (Tool, bool) {
	for _, t := range dock {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// TodoLists lists the to-do lists of a todoset, sorted by title.
func (c *Client) TodoLists(ctx context.Context, projectID, todosetID int64) ([]TodoList, error) {
	var lists []TodoList
	url := fmt.Sprintf("%s/buckets/%d/todosets/%d/todolists.json", c.base(), projectID, todosetID)
	if err := c.getJSON(ctx, url, &lists); err != nil {
		return nil, fmt.Errorf("list todolists: %w", err)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].Title < lists[j].Title })
	return lists, nil
}

// UploadAttachment pushes raw file bytes and returns the opaque attachable
// sgid used to reference the file from created entities.
func (c *Client) UploadAttachment(ctx context.Context, name string, data []byte) (string, error) {
	uploadURL := c.base() + "/attachments.json?name=" + url.QueryEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))

	var out struct {
		AttachableSGID string `json:"attachable_sgid"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return "", fmt.Errorf("upload attachment: %w", err)
	}
	if out.AttachableSGID == "" {
		return "", fmt.Errorf("upload attachment: response carried no attachable_sgid")
	}
	return out.AttachableSGID, nil
}

// Post describes one entity creation in a project tool.
type Post struct {
	ProjectID int64
	ToolType  string // ToolTodos, ToolMessageBoard, or ToolDocsAndFiles
	ToolID    int64  // message board or vault id
	ListID    int64  // to-do list id, for ToolTodos
	Title     string
	Content   string
	SGID      string // attachment reference, may be empty for ToolTodos/board
}

// CreateEntity posts the minutes into the selected tool.
func (c *Client) CreateEntity(ctx context.Context, p Post) error {
	attachment := ""
	if p.SGID != "" {
		attachment = fmt.Sprintf(`<bc-attachment sgid=%q></bc-attachment>`, p.SGID)
	}

	var postURL string
	var payload any
	switch p.ToolType {
	case ToolTodos:
		postURL = fmt.Sprintf("%s/buckets/%d/todolists/%d/todos.json", c.base(), p.ProjectID, p.ListID)
		payload = map[string]string{
			"content":     p.Title,
			"description": p.Content + attachment,
		}
	case ToolMessageBoard:
		postURL = fmt.Sprintf("%s/buckets/%d/message_boards/%d/messages.json", c.base(), p.ProjectID, p.ToolID)
		payload = map[string]string{
			"subject": p.Title,
			"content": p.Content + attachment,
			"status":  "active",
		}
	case ToolDocsAndFiles:
		postURL = fmt.Sprintf("%s/buckets/%d/vaults/%d/uploads.json", c.base(), p.ProjectID, p.ToolID)
		payload = map[string]string{
			"attachable_sgid": p.SGID,
			"base_name":       p.Title,
			"content":         p.Content,
		}
	default:
		return fmt.Errorf("unsupported tool type: %s", p.ToolType)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(ctx, req, nil); err != nil {
		return fmt.Errorf("post to %s: %w", p.ToolType, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("access token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("basecamp api error (status %d): %s", resp.StatusCode, string(body))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
