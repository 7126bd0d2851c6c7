package gitrepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/fetchers/gitrepo"
)

// commitFiles creates a repository in a temporary directory holding files
// in a single commit and returns the directory and the commit hash.
func commitFiles(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, err = worktree.Add(name)
		require.NoError(t, err)
	}

	hash, err := worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestFetcher(t *testing.T) {
	t.Parallel()

	t.Run("should read a committed file at the given revision", func(t *testing.T) {
		t.Parallel()

		// given
		dir, ref := commitFiles(t, map[string]string{
			"pom.xml":        "<poi.version>5.2.3</poi.version>",
			"module/pom.xml": "<version>${poi.version}</version>",
		})
		fetcher := gitrepo.NewFetcher(dir)
		location := entities.NewSourceLocation("acme", "poi-app", ref, "pom.xml")

		// when
		content, err := fetcher.Fetch(context.Background(), location, time.Second)

		// then
		require.NoError(t, err)
		assert.Equal(t, "<poi.version>5.2.3</poi.version>", content)
		assert.Equal(t, "git", fetcher.Name())
	})

	t.Run("should ignore uncommitted changes", func(t *testing.T) {
		t.Parallel()

		// given
		dir, ref := commitFiles(t, map[string]string{"pom.xml": "<poi.version>5.2.3</poi.version>"})
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("changed"), 0o600))
		fetcher := gitrepo.NewFetcher(dir)
		location := entities.NewSourceLocation("acme", "poi-app", ref, "pom.xml")

		// when
		content, err := fetcher.Fetch(context.Background(), location, time.Second)

		// then
		require.NoError(t, err)
		assert.Equal(t, "<poi.version>5.2.3</poi.version>", content)
	})

	t.Run("should fail on a file missing from the revision", func(t *testing.T) {
		t.Parallel()

		// given
		dir, ref := commitFiles(t, map[string]string{"module/pom.xml": "<project/>"})
		fetcher := gitrepo.NewFetcher(dir)
		location := entities.NewSourceLocation("acme", "poi-app", ref, "pom.xml")

		// when
		_, err := fetcher.Fetch(context.Background(), location, time.Second)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pom.xml")
	})

	t.Run("should fail on an unknown revision", func(t *testing.T) {
		t.Parallel()

		// given
		dir, _ := commitFiles(t, map[string]string{"pom.xml": "<project/>"})
		fetcher := gitrepo.NewFetcher(dir)
		location := entities.NewSourceLocation("acme", "poi-app", "no-such-branch", "pom.xml")

		// when
		_, err := fetcher.Fetch(context.Background(), location, time.Second)

		// then
		require.Error(t, err)
	})

	t.Run("should refuse a location it cannot address", func(t *testing.T) {
		t.Parallel()

		// given
		fetcher := gitrepo.NewFetcher(t.TempDir())

		// when
		_, err := fetcher.Fetch(context.Background(), entities.ParseSourceLocation("local/pom.xml"), time.Second)

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedLocation)
	})
}
