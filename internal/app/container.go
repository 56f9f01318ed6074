// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"os"

	"github.com/MarcStan/issue-tracker/internal/domain"
	"github.com/MarcStan/issue-tracker/internal/infra/config"
	"github.com/MarcStan/issue-tracker/internal/infra/identity"
	"github.com/MarcStan/issue-tracker/internal/infra/inistore"
	"github.com/MarcStan/issue-tracker/internal/infra/logging"
	"github.com/MarcStan/issue-tracker/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Issues   domain.IssueRepository
	Store    domain.ProjectStore
	Clock    domain.Clock
	Identity domain.Identity
	Logger   *slog.Logger
	Config   *domain.Config
}

// New creates a new Container rooted at the given working directory.
func New(dir string) (*Container, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		// A broken config file must not lock the user out of the tracker.
		cfg = domain.NewDefaultConfig()
	}

	store := inistore.New(dir)

	return &Container{
		Issues:   store,
		Store:    store,
		Clock:    domain.RealClock{},
		Identity: identity.NewResolver(cfg.Author),
		Logger:   logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level)),
		Config:   cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(issues domain.IssueRepository, store domain.ProjectStore, clock domain.Clock, id domain.Identity, logger *slog.Logger) *Container {
	return &Container{
		Issues:   issues,
		Store:    store,
		Clock:    clock,
		Identity: id,
		Logger:   logger,
		Config:   domain.NewDefaultConfig(),
	}
}

// UseCase factory methods

// InitProjectUseCase returns a new InitProject use case.
func (c *Container) InitProjectUseCase() *usecase.InitProject {
	return usecase.NewInitProject(c.Store, c.Identity, c.Config.DisplayLimit)
}

// AddIssueUseCase returns a new AddIssue use case.
func (c *Container) AddIssueUseCase() *usecase.AddIssue {
	return usecase.NewAddIssue(c.Issues, c.Store, c.Identity, c.Clock, c.Logger)
}

// ListIssuesUseCase returns a new ListIssues use case.
func (c *Container) ListIssuesUseCase() *usecase.ListIssues {
	return usecase.NewListIssues(c.Issues, c.Store)
}

// ShowIssueUseCase returns a new ShowIssue use case.
func (c *Container) ShowIssueUseCase() *usecase.ShowIssue {
	return usecase.NewShowIssue(c.Issues, c.Store)
}

// EditTagsUseCase returns a new EditTags use case.
func (c *Container) EditTagsUseCase() *usecase.EditTags {
	return usecase.NewEditTags(c.Issues, c.Store, c.Identity, c.Clock, c.Logger)
}

// CommentIssueUseCase returns a new CommentIssue use case.
func (c *Container) CommentIssueUseCase() *usecase.CommentIssue {
	return usecase.NewCommentIssue(c.Issues, c.Store, c.Identity, c.Clock)
}

// ChangeStateUseCase returns a new ChangeState use case.
func (c *Container) ChangeStateUseCase() *usecase.ChangeState {
	return usecase.NewChangeState(c.Issues, c.Store, c.Identity, c.Clock, c.Logger)
}
