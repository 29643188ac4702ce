package scaffold

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewData(t *testing.T) {
	tests := []struct {
		in, project, site string
	}{
		{"my-blog", "my-blog", "My Blog"},
		{"myblog", "myblog", "Myblog"},
		{"sites/glass_notes/", "glass_notes", "Glass Notes"},
	}
	for _, tt := range tests {
		d := NewData(tt.in)
		assert.Equal(t, tt.project, d.ProjectName, tt.in)
		assert.Equal(t, tt.site, d.SiteName, tt.in)
	}
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-blog")
	var out bytes.Buffer
	require.NoError(t, Generate(dir, NewData(dir), &out))

	for _, rel := range []string{"config.yaml", ".env.example", "README.md", "data/posts.json", "public/favicon.svg"} {
		assert.FileExists(t, filepath.Join(dir, rel))
		assert.Contains(t, out.String(), filepath.Join(dir, rel))
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), `name: "My Blog"`)

	raw, err := os.ReadFile(filepath.Join(dir, "data", "posts.json"))
	require.NoError(t, err)
	var posts []map[string]any
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0]["slug"])
	assert.Equal(t, "Hello from My Blog", posts[0]["title"])
}

func TestGenerateRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	err := Generate(dir, NewData(dir), &bytes.Buffer{})
	assert.ErrorContains(t, err, "already exists")
}
