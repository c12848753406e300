package basecamp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(serverURL string) *Client {
	return NewClient(Config{
		Endpoint:  serverURL,
		AccountID: "999",
	}, StaticTokenSource("test-token"))
}

func TestProjectsFiltersAndSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/999/projects.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		json.NewEncoder(w).Encode([]Project{
			{ID: 3, Name: "Zeta", Status: "active"},
			{ID: 1, Name: "Alpha", Status: "archived"},
			{ID: 2, Name: "Beta", Status: "active"},
		})
	}))
	defer server.Close()

	projects, err := testClient(server.URL).Projects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 active projects, got %d", len(projects))
	}
	if projects[0].Name != "Beta" || projects[1].Name != "Zeta" {
		t.Errorf("expected sorted [Beta Zeta], got [%s %s]", projects[0].Name, projects[1].Name)
	}
}

func TestDockAndFindTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/999/projects/42.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Project{
			ID: 42,
			Dock: []Tool{
				{ID: 7, Name: "todoset", Enabled: true},
				{ID: 8, Name: "message_board", Enabled: true},
			},
		})
	}))
	defer server.Close()

	dock, err := testClient(server.URL).Dock(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tool, ok := FindTool(dock, "message_board")
	if !ok || tool.ID != 8 {
		t.Errorf("expected message_board with id 8, got %+v ok=%v", tool, ok)
	}
	if _, ok := FindTool(dock, "vault"); ok {
		t.Error("expected vault to be absent")
	}
}

func TestUploadAttachment(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/999/attachments.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "minutes.docx" {
			t.Errorf("unexpected name param: %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/octet-stream" {
			t.Errorf("unexpected content type: %s", got)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"attachable_sgid": "sgid-123"})
	}))
	defer server.Close()

	sgid, err := testClient(server.URL).UploadAttachment(context.Background(), "minutes.docx", []byte("docx-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sgid != "sgid-123" {
		t.Errorf("expected sgid-123, got %s", sgid)
	}
	if string(gotBody) != "docx-bytes" {
		t.Errorf("server received wrong body: %q", gotBody)
	}
}

func TestCreateEntity(t *testing.T) {
	tests := []struct {
		name     string
		post     Post
		wantPath string
		check    func(t *testing.T, payload map[string]string)
	}{
		{
			name: "todo with attachment",
			post: Post{
				ProjectID: 1, ToolType: ToolTodos, ListID: 5,
				Title: "Minutes", Content: "See attached.", SGID: "sg-1",
			},
			wantPath: "/999/buckets/1/todolists/5/todos.json",
			check: func(t *testing.T, payload map[string]string) {
				if payload["content"] != "Minutes" {
					t.Errorf("unexpected content: %s", payload["content"])
				}
				if !strings.Contains(payload["description"], `<bc-attachment sgid="sg-1">`) {
					t.Errorf("description missing attachment tag: %s", payload["description"])
				}
			},
		},
		{
			name: "message board",
			post: Post{
				ProjectID: 1, ToolType: ToolMessageBoard, ToolID: 9,
				Title: "Minutes", Content: "Body",
			},
			wantPath: "/999/buckets/1/message_boards/9/messages.json",
			check: func(t *testing.T, payload map[string]string) {
				if payload["subject"] != "Minutes" || payload["status"] != "active" {
					t.Errorf("unexpected payload: %+v", payload)
				}
				if strings.Contains(payload["content"], "bc-attachment") {
					t.Error("expected no attachment tag without sgid")
				}
			},
		},
		{
			name: "vault upload",
			post: Post{
				ProjectID: 1, ToolType: ToolDocsAndFiles, ToolID: 11,
				Title: "Minutes.docx", SGID: "sg-2",
			},
			wantPath: "/999/buckets/1/vaults/11/uploads.json",
			check: func(t *testing.T, payload map[string]string) {
				if payload["attachable_sgid"] != "sg-2" || payload["base_name"] != "Minutes.docx" {
					t.Errorf("unexpected payload: %+v", payload)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var payload map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				json.NewDecoder(r.Body).Decode(&payload)
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			if err := testClient(server.URL).CreateEntity(context.Background(), tt.post); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, gotPath)
			}
			tt.check(t, payload)
		})
	}
}

func TestCreateEntityUnknownTool(t *testing.T) {
	err := testClient("http://unused").CreateEntity(context.Background(), Post{ToolType: "Campfire"})
	if err == nil || !strings.Contains(err.Error(), "unsupported tool type") {
		t.Errorf("expected unsupported tool error, got %v", err)
	}
}

func TestCreateEntityAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"no access"}`))
	}))
	defer server.Close()

	err := testClient(server.URL).CreateEntity(context.Background(), Post{
		ProjectID: 1, ToolType: ToolTodos, ListID: 2, Title: "x",
	})
	if err == nil || !strings.Contains(err.Error(), "status 403") {
		t.Errorf("expected 403 error, got %v", err)
	}
}

func TestRefreshTokenSource(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		q := r.URL.Query()
		if q.Get("type") != "refresh" || q.Get("refresh_token") != "rt-1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-1",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	src := NewRefreshTokenSource(Config{
		LaunchpadURL: server.URL,
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
	})
	src.cachePath = "" // keep the test off the real user cache dir

	token, err := src.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "at-1" {
		t.Errorf("expected at-1, got %s", token)
	}

	// Second call must reuse the in-memory token.
	if _, err := src.AccessToken(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single refresh call, got %d", calls)
	}
}

func TestRefreshTokenSourceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid refresh token"}`))
	}))
	defer server.Close()

	src := NewRefreshTokenSource(Config{LaunchpadURL: server.URL, RefreshToken: "bad"})
	src.cachePath = ""

	if _, err := src.AccessToken(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCachedTokenValidity(t *testing.T) {
	if (cachedToken{}).valid() {
		t.Error("empty token must not be valid")
	}
	expiring := cachedToken{AccessToken: "x", ExpiresAt: time.Now().Add(30 * time.Second)}
	if expiring.valid() {
		t.Error("token inside the expiry margin must not be valid")
	}
	fresh := cachedToken{AccessToken: "x", ExpiresAt: time.Now().Add(time.Hour)}
	if !fresh.valid() {
		t.Error("fresh token must be valid")
	}
}
