// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// InitProjectOutput contains the result of initializing a project.
type InitProjectOutput struct {
	Owner              string // Owner written to the marker file
	AlreadyInitialized bool   // True if the directory already was a project (no-op)
}

// InitProject is the use case for turning the working directory into an
// issue tracking project.
type InitProject struct {
	store    domain.ProjectStore
	identity domain.Identity
	limit    int
}

// NewInitProject creates a new InitProject use case. displayLimit is the
// title truncation length written to the marker file.
func NewInitProject(store domain.ProjectStore, identity domain.Identity, displayLimit int) *InitProject {
	if displayLimit < 1 {
		displayLimit = domain.DefaultDisplayLimit
	}
	return &InitProject{
		store:    store,
		identity: identity,
		limit:    displayLimit,
	}
}

// Execute writes the project marker unless the directory already is a
// project, in which case nothing is written.
func (uc *InitProject) Execute(_ context.Context) (*InitProjectOutput, error) {
	if uc.store.IsInitialized() {
		return &InitProjectOutput{AlreadyInitialized: true}, nil
	}
	owner, err := uc.identity.UserName()
	if err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	marker := domain.Marker{Owner: owner, DisplayLimit: uc.limit}
	if err := uc.store.WriteMarker(marker); err != nil {
		return nil, fmt.Errorf("write project marker: %w", err)
	}
	return &InitProjectOutput{Owner: owner}, nil
}
