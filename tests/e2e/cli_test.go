package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	messy     = "# Title\n\n* a\n* b\n"
	canonical = "# Title\n- a\n- b\n"
)

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	bin := buildBinary(t, t.TempDir())

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	read := func(path string) string {
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(b)
	}

	t.Run("stdout", func(t *testing.T) {
		write("a.md", messy)

		out, err := runCmd(t, dir, bin, "a.md")
		require.NoError(t, err)
		assert.Equal(t, canonical, out)
		assert.Equal(t, messy, read(filepath.Join(dir, "a.md")))
	})

	t.Run("file flag", func(t *testing.T) {
		write("a.md", messy)

		out, err := runCmd(t, dir, bin, "-f", "a.md", "--file", "a.md")
		require.NoError(t, err)
		assert.Equal(t, canonical+canonical, out)
	})

	t.Run("write glob", func(t *testing.T) {
		a := write("notes/a.md", messy)
		b := write("notes/deep/b.md", messy)
		txt := write("notes/c.txt", messy)

		_, err := runCmd(t, dir, bin, "-w", "-g", "notes/**/*.md")
		require.NoError(t, err)
		assert.Equal(t, canonical, read(a))
		assert.Equal(t, canonical, read(b))
		assert.Equal(t, messy, read(txt))
	})

	t.Run("check", func(t *testing.T) {
		write("a.md", messy)

		out, err := runCmd(t, dir, bin, "--check", "a.md")
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = runCmd(t, dir, bin, "--check", "a.md", "missing.md")
		require.Error(t, err, "check exits non-zero when a file fails")
		assert.Equal(t, "missing.md\n", out)
		assert.Equal(t, messy, read(filepath.Join(dir, "a.md")))
	})

	t.Run("exclusive modes", func(t *testing.T) {
		write("a.md", messy)

		_, err := runCmd(t, dir, bin, "--check", "--write", "a.md")
		assert.Error(t, err)
	})

	t.Run("json", func(t *testing.T) {
		write("m.md", "---\ntitle: Model\n---\nbody\n")

		out, err := runCmd(t, dir, bin, "--json", "m.md")
		require.NoError(t, err)

		var model map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &model))
		assert.Contains(t, model, "metadata")
		assert.Contains(t, out, `"title": "Model"`)
	})

	t.Run("md", func(t *testing.T) {
		write("a.md", messy)

		out, err := runCmd(t, dir, bin, "--md", "a.md")
		require.NoError(t, err)
		assert.Contains(t, out, "Heading")
		assert.Contains(t, out, "List")
	})

	t.Run("index", func(t *testing.T) {
		write("idx/one.md", "---\ntitle: One\ntags: [x]\n---\nbody\n")
		write("idx/two.md", "plain\n")

		_, err := runCmd(t, dir, bin, "--index", "index.json", "-g", "idx/*.md")
		require.NoError(t, err)

		var items []map[string]any
		require.NoError(t, json.Unmarshal([]byte(read(filepath.Join(dir, "index.json"))), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "one.md", items[0]["file"])
	})

	t.Run("version", func(t *testing.T) {
		out, err := runCmd(t, dir, bin, "version")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "mdfmt version "))
	})
}
