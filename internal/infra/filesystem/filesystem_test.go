package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	require.NoError(t, NewWriter().WriteJSON(path, map[string]string{"playerCount": "3"}))

	var got map[string]string
	require.NoError(t, NewReader().ReadJSON(path, &got))
	assert.Equal(t, "3", got["playerCount"])
}

func TestReadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\"11155111\":\n  - \"0xabc\"\n"), 0644))

	var got map[string][]string
	require.NoError(t, NewReader().ReadYAML(path, &got))
	assert.Equal(t, []string{"0xabc"}, got["11155111"])
}

func TestReadJSON_Missing(t *testing.T) {
	var got map[string]any
	err := NewReader().ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
