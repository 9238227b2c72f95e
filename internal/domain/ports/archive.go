package ports

import (
	"context"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// Archive keeps the version history and audit log of one session. Each
// session has its own archive, so no method takes a session name.
type Archive interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveVersion stores a snapshot version. Version numbers are unique.
	SaveVersion(ctx context.Context, version *entities.SessionVersion) error

	// FindVersions returns up to limit versions, newest first.
	FindVersions(ctx context.Context, limit int) ([]entities.SessionVersion, error)

	// FindVersion returns one version by number, or nil if it does not exist.
	FindVersion(ctx context.Context, version int) (*entities.SessionVersion, error)

	// FindLatestVersion returns the newest version, or nil if there is none.
	FindLatestVersion(ctx context.Context) (*entities.SessionVersion, error)

	// CountVersions counts stored versions.
	CountVersions(ctx context.Context) (int, error)

	// PruneVersions deletes all but the newest keep versions and returns how
	// many were removed.
	PruneVersions(ctx context.Context, keep int) (int, error)

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, elementID string, details map[string]any) error

	// FindAuditLog returns up to limit entries, newest first.
	FindAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error)

	// FindAuditLogByAction returns up to limit entries for one action, newest first.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
