// Package source resolves user-supplied repository references into a
// concrete backend target: a hosted owner/name pair or a local directory.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrInvalidRef indicates a malformed repository reference. It is
	// returned before any network call is attempted.
	ErrInvalidRef = errors.New("invalid repository reference")

	// ErrNotADirectory indicates a local path that exists but is not a
	// directory.
	ErrNotADirectory = errors.New("path is not a directory")
)

// ParseRepoRef extracts owner and repository name from a GitHub URL or a
// bare "owner/name" reference.
//
// Accepted forms:
//
//	https://github.com/owner/name
//	http://github.com/owner/name
//	github.com/owner/name
//	owner/name
//
// Trailing slashes and path segments beyond owner/name (e.g. "/tree/main")
// are ignored. A reference without at least one slash after stripping the
// scheme and host fails with ErrInvalidRef.
func ParseRepoRef(ref string) (owner, name string, err error) {
	trimmed := strings.TrimSpace(ref)
	trimmed = strings.TrimPrefix(trimmed, "https://github.com/")
	trimmed = strings.TrimPrefix(trimmed, "http://github.com/")
	trimmed = strings.TrimPrefix(trimmed, "github.com/")
	trimmed = strings.Trim(trimmed, "/")

	if trimmed == "" || !strings.Contains(trimmed, "/") {
		return "", "", fmt.Errorf("%w: %q (expected owner/name)", ErrInvalidRef, ref)
	}

	parts := strings.Split(trimmed, "/")
	if parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q (expected owner/name)", ErrInvalidRef, ref)
	}
	return parts[0], parts[1], nil
}

// ValidateLocalPath checks that path exists and is a directory.
func ValidateLocalPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return nil
}
