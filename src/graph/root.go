package graph

import (
	"github.com/go-git/go-git/v5"
)

// RepoRoot returns the worktree root of the git repository containing dir.
// ok is false when dir is not inside a repository.
func RepoRoot(dir string) (root string, ok bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false // bare repository
	}
	return wt.Filesystem.Root(), true
}
