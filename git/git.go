// Package git shells out to the local git binary for the small amount of
// repository introspection the CLI needs when run outside CI.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// HeadCommit returns the full hash of HEAD in dir.
func HeadCommit(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RepoName returns the owner/name of the origin remote, or an empty string
// when dir has no origin configured.
func RepoName(dir string) string {
	cmd := exec.Command("git", "config", "--get", "remote.origin.url")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return extractRepoName(strings.TrimSpace(string(output)))
}

// extractRepoName extracts owner/repo from a git remote URL.
func extractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	// SSH URLs (git@github.com:user/repo)
	if !strings.Contains(url, "://") {
		if idx := strings.LastIndex(url, ":"); idx != -1 {
			return url[idx+1:]
		}
	}

	// HTTPS URLs (https://github.com/user/repo)
	parts := strings.Split(url, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return url
}
