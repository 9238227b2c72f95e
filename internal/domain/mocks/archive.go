package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/ersonp/microscope-solo/internal/domain/entities"
)

// Archive is an in-memory implementation of ports.Archive.
type Archive struct {
	Versions []entities.SessionVersion
	Audit    []entities.AuditEntry
	Err      error

	// Call tracking
	SaveVersionCallCount int
	LogActionCallCount   int
	Closed               bool
}

// NewArchive creates an empty mock archive.
func NewArchive() *Archive {
	return &Archive{}
}

// EnsureSchema returns the configured error.
func (m *Archive) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close marks the archive closed.
func (m *Archive) Close() error {
	m.Closed = true
	return nil
}

// SaveVersion appends a version.
func (m *Archive) SaveVersion(_ context.Context, v *entities.SessionVersion) error {
	m.SaveVersionCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Versions = append(m.Versions, *v)
	return nil
}

func (m *Archive) newestFirst() []entities.SessionVersion {
	out := make([]entities.SessionVersion, len(m.Versions))
	copy(out, m.Versions)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out
}

// FindVersions returns up to limit versions, newest first.
func (m *Archive) FindVersions(_ context.Context, limit int) ([]entities.SessionVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := m.newestFirst()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindVersion returns one version, or nil.
func (m *Archive) FindVersion(_ context.Context, version int) (*entities.SessionVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Versions {
		if m.Versions[i].Version == version {
			v := m.Versions[i]
			return &v, nil
		}
	}
	return nil, nil
}

// FindLatestVersion returns the newest version, or nil.
func (m *Archive) FindLatestVersion(_ context.Context) (*entities.SessionVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := m.newestFirst()
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// CountVersions counts stored versions.
func (m *Archive) CountVersions(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Versions), nil
}

// PruneVersions keeps the newest keep versions.
func (m *Archive) PruneVersions(_ context.Context, keep int) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	out := m.newestFirst()
	if keep <= 0 || len(out) <= keep {
		return 0, nil
	}
	removed := len(out) - keep
	m.Versions = out[:keep]
	return removed, nil
}

// LogAction appends an audit entry.
func (m *Archive) LogAction(_ context.Context, action string, elementID string, details map[string]any) error {
	m.LogActionCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        int64(len(m.Audit) + 1),
		Action:    action,
		ElementID: elementID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog returns up to limit entries, newest first.
func (m *Archive) FindAuditLog(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	return m.findAudit("", limit)
}

// FindAuditLogByAction returns up to limit entries for action, newest first.
func (m *Archive) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	return m.findAudit(action, limit)
}

func (m *Archive) findAudit(action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if action != "" && m.Audit[i].Action != action {
			continue
		}
		out = append(out, m.Audit[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
