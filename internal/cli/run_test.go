package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected the environment header, got %q", r.Header.Get("Accept"))
		}
		switch r.URL.Path {
		case "/users":
			w.Write([]byte(`{"users":[{"name":"Ada"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	workspace := `
environments:
  test:
    baseUrl: ` + server.URL + `
    headers:
      Accept: application/json
requests:
  listUsers:
    method: GET
    url: /users
    extract:
      firstName: $.users[0].name
`
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workspace), 0o644))

	out := executeCommand(t, "run", path, "-e", "test", "--no-color")

	assert.Contains(t, out, "listUsers")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "firstName = Ada")
}

func TestRunCommand_UnknownEnvironment(t *testing.T) {
	workspace := `
requests:
  ping:
    method: GET
    url: http://localhost/health
`
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workspace), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run", path, "-e", "missing", "--no-color"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "missing"`)
}

func TestRunCommand_UnknownRequest(t *testing.T) {
	workspace := `
requests:
  ping:
    method: GET
    url: http://localhost/health
`
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workspace), 0o644))

	// Flag values persist on the shared command, so reset -e explicitly.
	rootCmd.SetArgs([]string{"run", path, "-e", "", "-r", "absent", "--no-color"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown request "absent"`)
}
