// Package git fetches dependency sources with the system git binary.
// Remote repositories are cloned into the package cache; local file://
// paths are read in place.
package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

var _ ports.SourceFetcher = (*RemoteFetcher)(nil)

// RemoteFetcher materializes remote repositories by shelling out to
// git. The binary is the transport: cloning, authentication and
// protocol negotiation all stay its problem.
type RemoteFetcher struct{}

// NewRemoteFetcher creates a new RemoteFetcher.
func NewRemoteFetcher() *RemoteFetcher {
	return &RemoteFetcher{}
}

// Fetch materializes the repository behind locator in dest. Without a
// revision request it resolves the tip of the default branch from a
// fresh clone, so rewritten upstream history can never leave the
// working copy ahead of the remote. With a revision request it reuses
// an existing clone and checks out that exact revision, fetching from
// origin once when the revision is unknown locally.
func (f *RemoteFetcher) Fetch(ctx context.Context, locator domain.Locator, dest string, opts ports.FetchOptions) (domain.CacheEntry, error) {
	var err error
	if opts.Revision == "" {
		err = f.cloneTip(ctx, locator, dest)
	} else {
		err = f.checkoutRevision(ctx, locator, dest, opts.Revision)
	}
	if err != nil {
		return domain.CacheEntry{}, describe(err, locator)
	}

	revision, err := headRevision(ctx, dest)
	if err != nil {
		return domain.CacheEntry{}, describe(err, locator)
	}

	return domain.CacheEntry{Locator: locator, Path: dest, Revision: revision}, nil
}

func (f *RemoteFetcher) cloneTip(ctx context.Context, locator domain.Locator, dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFetch, err.Error()), "path", dest)
	}

	_, err := runGit(ctx, "", "clone", "--quiet", cloneURL(locator), dest)
	return err
}

func (f *RemoteFetcher) checkoutRevision(ctx context.Context, locator domain.Locator, dest, revision string) error {
	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		if err := os.RemoveAll(dest); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrFetch, err.Error()), "path", dest)
		}
		if _, err := runGit(ctx, "", "clone", "--quiet", cloneURL(locator), dest); err != nil {
			return err
		}
	}

	if _, err := runGit(ctx, dest, "checkout", "--detach", "--quiet", revision); err != nil {
		// The locked revision may postdate the cached clone. Refresh
		// from origin once and retry before giving up.
		if _, err := runGit(ctx, dest, "fetch", "--quiet", "origin"); err != nil {
			return err
		}
		if _, err := runGit(ctx, dest, "checkout", "--detach", "--quiet", revision); err != nil {
			return err
		}
	}

	return nil
}

// cloneURL maps a locator to a git URL. Bare references such as
// github.com/org/repo default to https.
func cloneURL(locator domain.Locator) string {
	raw := locator.String()
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// headRevision reads the commit the working copy at dir has checked out.
func headRevision(ctx context.Context, dir string) (string, error) {
	return runGit(ctx, dir, "rev-parse", "HEAD")
}

// runGit executes one git command and returns its trimmed stdout.
// Failures carry the command and its stderr and classify as fetch
// errors; cancellation surfaces as the plain context error.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		if stderr == "" {
			stderr = err.Error()
		}

		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrFetch, "git "+args[0]+" failed"),
			"stderr", stderr),
			"command", "git "+strings.Join(args, " "),
		)
	}

	return strings.TrimSpace(string(output)), nil
}

// describe attaches the locator to fetch failures. Context errors pass
// through untouched so cancellation keeps its identity.
func describe(err error, locator domain.Locator) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return zerr.With(err, "locator", locator.String())
}
