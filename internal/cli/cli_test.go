package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ticketgraph/pkg/config"
	"github.com/matzehuels/ticketgraph/pkg/errors"
)

const searchBody = `{
  "startAt": 0, "maxResults": 100, "total": 2,
  "names": {"customfield_10200": "Flagged"},
  "issues": [
    {"key": "T-1", "fields": {
      "summary": "Login", "status": {"name": "Backlog"}, "priority": {"name": "High"},
      "issuetype": {"name": "Story"}, "customfield_10200": [{"value": "Impediment"}],
      "issuelinks": [{"type": {"name": "Blocks"}, "outwardIssue": {"key": "T-2"}}]
    }},
    {"key": "T-2", "fields": {
      "summary": "Logout", "status": {"name": "Done"}, "priority": {"name": "Low"},
      "issuetype": {"name": "Story"}, "issuelinks": []
    }}
  ]
}`

const fieldsBody = `[
  {"id": "customfield_10200", "name": "Flagged", "custom": true},
  {"id": "summary", "name": "Summary", "custom": false}
]`

// fakeSite serves canned search and field responses.
func fakeSite(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/rest/api/3/search":
			io.WriteString(w, searchBody)
		case "/rest/api/3/field":
			io.WriteString(w, fieldsBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func testCLI(t *testing.T, env map[string]string) *CLI {
	t.Helper()
	t.Chdir(t.TempDir())
	c := New(io.Discard, log.InfoLevel)
	c.Getenv = func(k string) string { return env[k] }
	return c
}

func siteEnv(url string) map[string]string {
	return map[string]string{
		config.EnvEmail:   "me@acme.io",
		config.EnvToken:   "tok",
		config.EnvBaseURL: url,
	}
}

func TestRenderCommand(t *testing.T) {
	srv, _ := fakeSite(t)
	c := testCLI(t, siteEnv(srv.URL))

	root := c.RootCommand()
	root.SetArgs([]string{"render", "--jql", "project = T", "-f", "drawio,mermaid,json", "-o", "out/graph", "--mermaid-out", "out/graph.md"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range []string{"out/graph.drawio", "out/graph.md", "out/graph.json"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	md, err := os.ReadFile("out/graph.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "T-1 -->|Blocks| T-2") {
		t.Errorf("mermaid output missing edge:\n%s", md)
	}
	if !strings.Contains(string(md), "class T-1 flagged;") {
		t.Errorf("mermaid output missing flagged class:\n%s", md)
	}

	var doc struct {
		Query string `json:"query"`
	}
	data, err := os.ReadFile("out/graph.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json output: %v", err)
	}
	if doc.Query != "project = T" {
		t.Errorf("query = %q", doc.Query)
	}
}

func TestRenderCommandConfigFile(t *testing.T) {
	srv, _ := fakeSite(t)
	c := testCLI(t, siteEnv(srv.URL))

	toml := `jql = "project = T"
formats = ["drawio"]
output = "team"
`
	if err := os.WriteFile(config.DefaultFileName, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	root := c.RootCommand()
	root.SetArgs([]string{"render"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat("team.drawio"); err != nil {
		t.Errorf("expected team.drawio: %v", err)
	}
	if _, err := os.Stat(config.DefaultMermaidOutput); err == nil {
		t.Error("mermaid should not be written when not requested")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		env  func(url string) map[string]string
		args []string
		code errors.Code
	}{
		{
			name: "missing credentials",
			env:  func(string) map[string]string { return nil },
			args: []string{"render", "--jql", "project = T"},
			code: errors.ErrCodeMissingCredentials,
		},
		{
			name: "missing query",
			env:  siteEnv,
			args: []string{"render"},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "invalid format",
			env:  siteEnv,
			args: []string{"render", "--jql", "project = T", "-f", "pdf"},
			code: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := fakeSite(t)
			c := testCLI(t, tt.env(srv.URL))

			root := c.RootCommand()
			root.SetArgs(tt.args)
			root.SetErr(io.Discard)
			err := root.Execute()
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if n := requests.Load(); n != 0 {
				t.Errorf("made %d requests, want none", n)
			}
		})
	}
}

func TestRenderCommandCaches(t *testing.T) {
	srv, requests := fakeSite(t)
	c := testCLI(t, siteEnv(srv.URL))
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	args := []string{"render", "--jql", "project = T", "-f", "mermaid", "--cache-ttl", "10m"}
	for range 2 {
		root := c.RootCommand()
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("made %d requests, want 1 (second run from cache)", n)
	}
	if _, err := os.Stat(filepath.Join(cacheHome, appName)); err != nil {
		t.Errorf("cache dir missing: %v", err)
	}
}

func TestFieldsCommand(t *testing.T) {
	srv, requests := fakeSite(t)
	c := testCLI(t, siteEnv(srv.URL))

	root := c.RootCommand()
	root.SetArgs([]string{"fields"})
	if err := root.Execute(); err != nil {
		t.Fatalf("fields: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("made %d requests, want 1", n)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"render", "fields", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
