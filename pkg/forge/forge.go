// Package forge abstracts the remote issue tracker behind a project-scoped API.
package forge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lerenn/push-issues/pkg/issue"
	"github.com/lerenn/push-issues/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=forge.go -destination=mocks/forge.gen.go -package=mocks

// Forge interface defines the methods that all forge implementations must provide.
// Every implementation is bound to one project.
type Forge interface {
	// Name returns the name of the forge.
	Name() string

	// Project returns the project the forge is bound to.
	Project() issue.Reference

	// ListMilestones lists every milestone of the project, open and closed.
	ListMilestones(ctx context.Context) ([]issue.Milestone, error)

	// ListIssues lists every issue of the project attached to the given
	// milestone, open and closed. A zero milestone lists issues attached
	// to any milestone.
	ListIssues(ctx context.Context, milestone int) ([]issue.Info, error)

	// CreateMilestone creates a milestone and returns it with its assigned number.
	CreateMilestone(ctx context.Context, title, description string) (issue.Milestone, error)

	// CreateIssue creates an issue attached to a milestone.
	CreateIssue(ctx context.Context, title, body string, milestone int) (issue.Info, error)
}

// Params contains the parameters needed to bind a forge to a project.
type Params struct {
	Project issue.Reference
	// Token authenticates requests; empty means anonymous access.
	Token string
	// BaseURL points at a self-hosted instance; empty means the public service.
	BaseURL string
	// Timeout bounds every single request.
	Timeout time.Duration
	Logger  logger.Logger
}

// Constructor builds a forge bound to a project.
type Constructor func(params Params) (Forge, error)

// ManagerInterface defines the interface for forge management.
type ManagerInterface interface {
	// GetForge returns the forge implementation for the given name, bound to a project.
	GetForge(name string, params Params) (Forge, error)
	// Names returns the names of the registered forges.
	Names() []string
}

// Manager manages forge implementations and provides a unified interface.
type Manager struct {
	constructors map[string]Constructor
	logger       logger.Logger
}

// NewManager creates a new forge manager with registered forge implementations.
func NewManager(l logger.Logger) *Manager {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	m := &Manager{
		constructors: make(map[string]Constructor),
		logger:       l,
	}

	m.registerForges()

	return m
}

// registerForges registers all available forge implementations.
func (m *Manager) registerForges() {
	m.Register(GitHubName, func(params Params) (Forge, error) {
		return NewGitHub(params)
	})
}

// Register adds or replaces a forge implementation.
func (m *Manager) Register(name string, constructor Constructor) {
	m.constructors[name] = constructor
}

// GetForge returns the forge implementation for the given name, bound to a project.
func (m *Manager) GetForge(name string, params Params) (Forge, error) {
	constructor, exists := m.constructors[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedForge, name)
	}
	if params.Logger == nil {
		params.Logger = m.logger
	}
	return constructor(params)
}

// Names returns the names of the registered forges, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.constructors))
	for name := range m.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
