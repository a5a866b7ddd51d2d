package filesystem

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoFSAppendFile(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fs.AppendFile("events.log", []byte("one\n"), 0644))
	require.NoError(t, fs.AppendFile("events.log", []byte("two\n"), 0644))

	data, err := fs.ReadFile("events.log")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestAferoFSRename(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("mods", 0755))
	require.NoError(t, fs.WriteFile("mods/a.jar.tmp", []byte("payload"), 0644))

	require.NoError(t, fs.Rename("mods/a.jar.tmp", "mods/a.jar"))

	data, err := fs.ReadFile("mods/a.jar")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	_, err = fs.ReadFile("mods/a.jar.tmp")
	assert.Error(t, err)
}

func TestAferoFSReadDir(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("mods", 0755))
	require.NoError(t, fs.WriteFile("mods/a.jar", []byte("a"), 0644))
	require.NoError(t, fs.WriteFile("mods/b.jar", []byte("b"), 0644))

	entries, err := fs.ReadDir("mods")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].Name(), entries[1].Name()}
	assert.ElementsMatch(t, []string{"a.jar", "b.jar"}, names)
}

func TestOSFSRoundTrip(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()

	require.NoError(t, fs.WriteFile(dir+"/a.txt", []byte("hello"), 0644))
	require.NoError(t, fs.AppendFile(dir+"/a.txt", []byte(" world"), 0644))

	data, err := fs.ReadFile(dir + "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	require.NoError(t, fs.Rename(dir+"/a.txt", dir+"/b.txt"))
	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.txt", entries[0].Name())

	require.NoError(t, fs.Remove(dir+"/b.txt"))
}
