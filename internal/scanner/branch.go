package scanner

import (
	"github.com/go-git/go-git/v5"
)

// detectBranch returns the checked-out branch of a local repository, or an
// empty string when the path is not a git repository, HEAD is detached, or
// detection fails for any other reason. Best-effort only.
func detectBranch(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", nil
	}

	head, err := repo.Head()
	if err != nil {
		return "", nil
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return "", nil
}
