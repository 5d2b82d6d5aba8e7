package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role represents a named grant that groups permissions. Role names are
// case-sensitive and globally unique; identity is immutable once created.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Permission represents a single access grant, conventionally named
// resource:action (e.g. "users:read"). Names are case-sensitive and
// globally unique.
type Permission struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Access is the resolved authorization state of a client: its role names and
// the union of the permissions attached to those roles. Both slices are sorted
// and free of duplicates, so the same assignments always produce the same
// Access regardless of fetch order. A permission's presence says nothing about
// which role contributed it.
type Access struct {
	Roles       []string
	Permissions []string
}

// NewAccess builds an Access from possibly-duplicated, unordered name lists.
// Duplicates collapse to one entry per name.
func NewAccess(roles, permissions []string) *Access {
	return &Access{
		Roles:       dedupSorted(roles),
		Permissions: dedupSorted(permissions),
	}
}

// HasPermission reports whether the resolved permission set contains name.
func (a *Access) HasPermission(name string) bool {
	_, found := slices.BinarySearch(a.Permissions, name)
	return found
}

// HasRole reports whether the resolved role set contains name.
func (a *Access) HasRole(name string) bool {
	_, found := slices.BinarySearch(a.Roles, name)
	return found
}

// dedupSorted returns a sorted copy of names with duplicates removed.
// The result is never nil so empty assignments serialize as [] not null.
func dedupSorted(names []string) []string {
	out := make([]string, 0, len(names))
	out = append(out, names...)
	slices.Sort(out)
	return slices.Compact(out)
}
