// Package remote resolves the hosted owner, repository and branch of a local
// git checkout.
package remote

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable wraps every reason a remote could not be resolved.
var ErrUnavailable = errors.New("remote unavailable")

// Info identifies a branch of a hosted repository. All fields are non-empty.
type Info struct {
	Owner  string
	Repo   string
	Branch string
}

// String formats the remote as "owner/repo @ branch".
func (i Info) String() string {
	return fmt.Sprintf("%s/%s @ %s", i.Owner, i.Repo, i.Branch)
}

// RunFunc runs a command in dir and returns its standard output.
type RunFunc func(ctx context.Context, dir, name string, args ...string) (string, error)

// Resolver reads remote.origin.url and the current branch with the git CLI.
type Resolver struct {
	Host string
	Run  RunFunc
}

// NewResolver returns a Resolver that runs the real git binary.
func NewResolver(host string) *Resolver {
	return &Resolver{Host: host, Run: runCommand}
}

// Resolve returns the remote of the checkout containing dir. Any failure is
// reported as an error wrapping ErrUnavailable.
func (r *Resolver) Resolve(ctx context.Context, dir string) (*Info, error) {
	url, err := r.Run(ctx, dir, "git", "config", "--get", "remote.origin.url")
	if err != nil {
		return nil, fmt.Errorf("%w: not in a git repository or git not installed: %v", ErrUnavailable, err)
	}

	owner, repo, err := ParseURL(url, r.Host)
	if err != nil {
		return nil, err
	}

	branch, err := r.Run(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read current branch: %v", ErrUnavailable, err)
	}
	if branch == "" || branch == "HEAD" {
		return nil, fmt.Errorf("%w: detached HEAD", ErrUnavailable)
	}

	return &Info{Owner: owner, Repo: repo, Branch: branch}, nil
}

// ParseURL extracts owner and repository from a remote URL hosted on host.
// Accepted forms:
//
//	https://host/owner/repo[.git]
//	ssh://user@host/owner/repo[.git]
//	user@host:owner/repo[.git]
func ParseURL(remoteURL, host string) (owner, repo string, err error) {
	u := strings.TrimSpace(remoteURL)

	var hostPart, pathPart string
	if scheme, rest, ok := strings.Cut(u, "://"); ok {
		switch scheme {
		case "https", "http", "ssh":
		default:
			return "", "", fmt.Errorf("%w: unsupported remote scheme %q", ErrUnavailable, scheme)
		}
		hostPart, pathPart, _ = strings.Cut(rest, "/")
	} else {
		hostPart, pathPart, ok = strings.Cut(u, ":")
		if !ok {
			return "", "", fmt.Errorf("%w: unrecognized remote %q", ErrUnavailable, u)
		}
	}

	if i := strings.LastIndex(hostPart, "@"); i >= 0 {
		hostPart = hostPart[i+1:]
	}
	if !strings.EqualFold(hostPart, host) {
		return "", "", fmt.Errorf("%w: remote %q is not hosted on %s", ErrUnavailable, u, host)
	}

	pathPart = strings.TrimSuffix(strings.Trim(pathPart, "/"), ".git")
	owner, repo, ok := strings.Cut(pathPart, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: cannot find owner/repo in %q", ErrUnavailable, u)
	}
	return owner, repo, nil
}

func runCommand(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s %s: %s: %w", name, strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}
