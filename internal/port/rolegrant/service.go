// Package rolegrant defines the external role management port.
package rolegrant

import "context"

// Ref is an opaque platform-side role reference (Discord role ID).
type Ref string

// Service is the port interface for server role lookups and grants.
type Service interface {
	// RoleExists resolves a role name to its platform reference.
	RoleExists(ctx context.Context, name string) (Ref, bool, error)

	// CreateRole creates a server role with the given display color.
	CreateRole(ctx context.Context, name string, color int) (Ref, error)

	// DeleteRole removes a server role.
	DeleteRole(ctx context.Context, ref Ref) error

	// Grant assigns the role to a member.
	Grant(ctx context.Context, userID string, ref Ref) error

	// Has reports whether the member already holds the role.
	Has(ctx context.Context, userID string, ref Ref) (bool, error)
}
