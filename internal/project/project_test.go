package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	perferrors "perfledger/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot_NearestAncestor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"version":"1.0.0"}`), 0644))
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := FindRoot(nested, DefaultManifests)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_InnerManifestWins(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(inner, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "VERSION"), []byte("1.0.0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(inner, "VERSION"), []byte("2.0.0\n"), 0644))

	got, err := FindRoot(inner, DefaultManifests)
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestFindRoot_DirectoryNamedLikeManifestIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "uniq-manifest"), 0755))

	_, err := FindRoot(filepath.Join(root, "sub"), []string{"uniq-manifest"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, perferrors.ErrProjectNotFound))
}

func TestReadVersion(t *testing.T) {
	tests := []struct {
		file    string
		content string
		want    string
	}{
		{"package.json", `{"name":"x","version":"1.2.3"}`, "1.2.3"},
		{"VERSION", "\n  0.4.0  \nignored\n", "0.4.0"},
		{"perfledger.yaml", "name: x\nversion: 2.0.1\n", "2.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(root, tt.file), []byte(tt.content), 0644))

			got, err := ReadVersion(root, DefaultManifests)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadVersion_Errors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"x"}`), 0644))
	_, err := ReadVersion(root, DefaultManifests)
	assert.ErrorContains(t, err, "does not declare a version")

	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{`), 0644))
	_, err = ReadVersion(root, DefaultManifests)
	assert.Error(t, err)

	_, err = ReadVersion(t.TempDir(), DefaultManifests)
	assert.True(t, errors.Is(err, perferrors.ErrProjectNotFound))
}
