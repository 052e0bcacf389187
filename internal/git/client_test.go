package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with one committed file.
func initRepo(t *testing.T) (string, *gogit.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"1.0.0"}`), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("package.json")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, wt
}

func TestDirty_NotARepository(t *testing.T) {
	dirty, err := NewClient().Dirty(t.TempDir())
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestDirty_CleanTree(t *testing.T) {
	dir, _ := initRepo(t)
	dirty, err := NewClient().Dirty(dir)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestDirty_UntrackedFilesIgnored(t *testing.T) {
	dir, _ := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644))

	dirty, err := NewClient().Dirty(dir)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestDirty_ModifiedTrackedFile(t *testing.T) {
	dir, _ := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"1.0.1"}`), 0644))

	dirty, err := NewClient().Dirty(dir)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestDirty_StagedNewFile(t *testing.T) {
	dir, wt := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staged.txt"), []byte("x"), 0644))
	_, err := wt.Add("staged.txt")
	require.NoError(t, err)

	dirty, err := NewClient().Dirty(dir)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestDirty_FromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "perf")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{}`), 0644))

	dirty, err := NewClient().Dirty(sub)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestCurrentCommitSHA(t *testing.T) {
	dir, _ := initRepo(t)
	sha, err := NewClient().CurrentCommitSHA(dir)
	require.NoError(t, err)
	assert.Len(t, sha, 40)

	_, err = NewClient().CurrentCommitSHA(t.TempDir())
	assert.Error(t, err)
}

var _ IClient = (*Client)(nil)
