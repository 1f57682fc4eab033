package rbac

import "strings"

// Checker answers permission questions for the two account roles.
// Grants ending in "*" cover every permission with that prefix.
type Checker struct {
	grants map[string][]string
}

func NewChecker(policy map[string][]string) *Checker {
	if policy == nil {
		policy = RolePermissions
	}
	grants := make(map[string][]string, len(policy))
	for role, perms := range policy {
		grants[strings.ToLower(role)] = append([]string(nil), perms...)
	}
	return &Checker{grants: grants}
}

func (c *Checker) Has(role, perm string) bool {
	for _, g := range c.grants[strings.ToLower(role)] {
		if granted(g, perm) {
			return true
		}
	}
	return false
}

// Any reports whether role holds at least one of perms.
func (c *Checker) Any(role string, perms ...string) bool {
	for _, p := range perms {
		if c.Has(role, p) {
			return true
		}
	}
	return false
}

func granted(grant, perm string) bool {
	if prefix, ok := strings.CutSuffix(grant, "*"); ok {
		return strings.HasPrefix(perm, prefix)
	}
	return grant == perm
}
