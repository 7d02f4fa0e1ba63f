package repositories

import "context"

// Repository aggregates all sub-repositories behind one interface so
// services can take a single dependency.
type Repository interface {
	User() UserRepository
	Role() RoleRepository
	Course() CourseRepository

	// WithTransaction executes fn with a repository bound to a transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager handles repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
