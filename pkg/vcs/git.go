// Package vcs switches a working tree between revisions using the git CLI.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/specvital/testdiff/pkg/domain"
)

// Git runs git commands in Dir.
type Git struct {
	Dir string
}

// NewGit creates a switcher for the working tree at dir.
func NewGit(dir string) *Git {
	return &Git{Dir: dir}
}

// Head returns the current branch name, or the commit SHA when HEAD is detached.
func (g *Git) Head(ctx context.Context) (string, error) {
	if branch, err := g.run(ctx, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil && branch != "" {
		return branch, nil
	}

	sha, err := g.run(ctx, "rev-parse", "--verify", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return sha, nil
}

// Checkout switches the working tree to ref.
func (g *Git) Checkout(ctx context.Context, ref string) error {
	if ref == "" {
		return fmt.Errorf("checkout: ref is required: %w", domain.ErrBaselineUnavailable)
	}

	if _, err := g.run(ctx, "checkout", "--quiet", ref); err != nil {
		return fmt.Errorf("checkout %s: %w", ref, err)
	}
	return nil
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git %s: %w", args[0], ctx.Err())
		}
		return "", fmt.Errorf("git %s: %s: %w: %w", args[0], strings.TrimSpace(stderr.String()), domain.ErrBaselineUnavailable, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
