package service

import "github.com/synchub/attendance/internal/core/domain"

// RolePolicy authorizes superusers and members of any allowed group.
type RolePolicy struct {
	allowed map[string]struct{}
}

// NewRolePolicy builds a policy over the given group names.
func NewRolePolicy(groups ...string) RolePolicy {
	allowed := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		allowed[g] = struct{}{}
	}
	return RolePolicy{allowed: allowed}
}

// Decide returns nil when p may proceed and domain.ErrAccessDenied otherwise.
func (r RolePolicy) Decide(p domain.Principal) error {
	if p.Superuser {
		return nil
	}
	for _, g := range p.Groups {
		if _, ok := r.allowed[g]; ok {
			return nil
		}
	}
	return domain.ErrAccessDenied
}
