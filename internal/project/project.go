// Package project resolves clone targets like "owner/repo" or
// "git:git@host:owner/repo.git" to a URL and a checkout directory.
package project

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	ErrUnknownPrefix  = errors.New("unknown project prefix")
	ErrInvalidProject = errors.New("invalid project")
)

// Project is a repository to check out under the root.
type Project struct {
	URL   string
	Host  string
	Owner string // may contain slashes for nested groups
	Repo  string
}

// Dir returns the checkout directory: root/host/owner/repo.
func (p Project) Dir(root string) string {
	return filepath.Join(root, p.Host, filepath.FromSlash(p.Owner), p.Repo)
}

// Parse resolves a project spec. Accepted forms:
//
//	owner/repo                 GitHub, cloned over ssh
//	gh:owner/repo              same, also github:
//	git:<url>                  any git url
//	git@host:owner/repo.git    scp-like url without prefix
//	https://host/owner/repo    url with a scheme, without prefix
func Parse(spec string) (Project, error) {
	spec = strings.TrimSpace(spec)
	kind, rest, found := strings.Cut(spec, ":")
	switch {
	case kind == "gh" || kind == "github" || kind == "git":
	case strings.HasPrefix(spec, "git@") || strings.Contains(spec, "://"):
		return parseURL(spec)
	case !found:
		kind, rest = "gh", spec
	}

	switch kind {
	case "gh", "github":
		parts := strings.Split(rest, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Project{}, fmt.Errorf("%w: github project must be owner/repo: %q", ErrInvalidProject, rest)
		}
		repo := strings.TrimSuffix(parts[1], ".git")
		return Project{
			URL:   fmt.Sprintf("git@github.com:%s/%s.git", parts[0], repo),
			Host:  "github.com",
			Owner: parts[0],
			Repo:  repo,
		}, nil
	case "git":
		return parseURL(rest)
	default:
		return Project{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, kind)
	}
}

func parseURL(raw string) (Project, error) {
	var host, path string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Project{}, fmt.Errorf("%w: %v", ErrInvalidProject, err)
		}
		host, path = u.Hostname(), u.Path
	} else {
		// scp-like: [user@]host:path
		addr, p, ok := strings.Cut(raw, ":")
		if !ok {
			return Project{}, fmt.Errorf("%w: %q is not a git url", ErrInvalidProject, raw)
		}
		if i := strings.LastIndex(addr, "@"); i >= 0 {
			addr = addr[i+1:]
		}
		host, path = addr, p
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	i := strings.LastIndex(path, "/")
	if host == "" || i <= 0 || i == len(path)-1 {
		return Project{}, fmt.Errorf("%w: %q needs host, owner and repo", ErrInvalidProject, raw)
	}
	return Project{
		URL:   raw,
		Host:  host,
		Owner: path[:i],
		Repo:  path[i+1:],
	}, nil
}
