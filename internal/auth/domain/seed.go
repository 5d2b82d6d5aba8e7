package domain

import "fmt"

// SeedRole describes a role the bootstrap seeder must ensure exists.
type SeedRole struct {
	Name        string
	Description string
}

// SeedPermission describes a permission the bootstrap seeder must ensure exists.
type SeedPermission struct {
	Name        string
	Description string
}

// SeedConfig is the explicit, versioned seed set consumed by the bootstrap
// seeder. It is passed in as a value rather than read from process-wide
// globals so each environment can override it and tests can use small sets.
type SeedConfig struct {
	Roles       []SeedRole
	Permissions []SeedPermission

	// Grants maps role name to the permission names it receives.
	Grants map[string][]string
}

// Validate checks the seed set is internally consistent: every grant must
// reference a declared role and declared permissions.
func (s *SeedConfig) Validate() error {
	roles := make(map[string]struct{}, len(s.Roles))
	for _, r := range s.Roles {
		if r.Name == "" {
			return fmt.Errorf("seed role with empty name")
		}
		if _, dup := roles[r.Name]; dup {
			return fmt.Errorf("duplicate seed role %q", r.Name)
		}
		roles[r.Name] = struct{}{}
	}

	perms := make(map[string]struct{}, len(s.Permissions))
	for _, p := range s.Permissions {
		if p.Name == "" {
			return fmt.Errorf("seed permission with empty name")
		}
		if _, dup := perms[p.Name]; dup {
			return fmt.Errorf("duplicate seed permission %q", p.Name)
		}
		perms[p.Name] = struct{}{}
	}

	for roleName, grantNames := range s.Grants {
		if _, ok := roles[roleName]; !ok {
			return fmt.Errorf("grant references unknown role %q", roleName)
		}
		for _, permName := range grantNames {
			if _, ok := perms[permName]; !ok {
				return fmt.Errorf("grant for role %q references unknown permission %q", roleName, permName)
			}
		}
	}

	return nil
}

// DefaultSeedConfig returns the core roles, permissions, and grants every
// fresh deployment needs. The seeder never deletes or mutates rows, so
// customizations made after first boot survive repeated seeding.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Roles: []SeedRole{
			{Name: "admin", Description: "Full system access"},
			{Name: "user", Description: "Basic authenticated user access"},
			{Name: "service", Description: "For machine-to-machine communication"},
		},
		Permissions: []SeedPermission{
			{Name: "users:read", Description: "View user information"},
			{Name: "users:write", Description: "Create/update user information"},
			{Name: "roles:read", Description: "View roles"},
			{Name: "roles:write", Description: "Create/update roles"},
			{Name: "permissions:read", Description: "View permissions"},
			{Name: "permissions:write", Description: "Create/update permissions"},
			{Name: "role:admin_manage", Description: "Special permission for admin operations"},
		},
		Grants: map[string][]string{
			"admin": {
				"users:read",
				"users:write",
				"roles:read",
				"roles:write",
				"permissions:read",
				"permissions:write",
				"role:admin_manage",
			},
			"user": {"users:read"},
			// Empty by default, configured per service after deployment.
			"service": {},
		},
	}
}
