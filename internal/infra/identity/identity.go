// Package identity resolves the author name used for new issues and
// comments.
package identity

import (
	"os"
	"strings"

	gitconfig "github.com/go-git/go-git/v5/config"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// Ensure Resolver implements domain.Identity.
var _ domain.Identity = (*Resolver)(nil)

// Resolver resolves the current user name. The lookup order is:
// explicit config override, git global user.name, then the USER
// environment variable.
type Resolver struct {
	override string
}

// NewResolver creates a new Resolver. override may be empty.
func NewResolver(override string) *Resolver {
	return &Resolver{override: override}
}

// UserName returns the resolved author name.
func (r *Resolver) UserName() (string, error) {
	if name := strings.TrimSpace(r.override); name != "" {
		return name, nil
	}
	if cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope); err == nil {
		if name := strings.TrimSpace(cfg.User.Name); name != "" {
			return name, nil
		}
	}
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return name, nil
	}
	return "", domain.ErrNoUserName
}

// Static is an Identity returning a fixed name. Useful in tests.
type Static string

// UserName returns the fixed name.
func (s Static) UserName() (string, error) {
	if s == "" {
		return "", domain.ErrNoUserName
	}
	return string(s), nil
}
