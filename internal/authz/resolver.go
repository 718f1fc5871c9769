// Package authz implements the capability resolver: a pure decision function
// that maps a principal's global roles, a requested action, and an optional
// resource-scoped access grant to an allow/deny decision.
//
// The resolver performs no I/O and never fails: identical inputs always
// produce identical output, which keeps it testable without a database.
// Callers load the relevant grant first and map Deny to a forbidden error at
// the boundary.
package authz

import (
	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// Action is an operation a principal may request on a subject.
type Action string

const (
	// ActionManage covers every operation on a subject, including
	// administering other members' access.
	ActionManage Action = "manage"

	// ActionCreate allows creating resources under a subject.
	ActionCreate Action = "create"

	// ActionRead allows reading a subject.
	ActionRead Action = "read"

	// ActionUpdate allows modifying a subject.
	ActionUpdate Action = "update"

	// ActionDelete allows removing a subject.
	ActionDelete Action = "delete"
)

// Subject identifies the kind of resource a capability check applies to.
type Subject string

const (
	// SubjectGrant is an access grant record itself.
	SubjectGrant Subject = "grant"

	// SubjectProject is a project.
	SubjectProject Subject = "project"

	// SubjectUser is a user account.
	SubjectUser Subject = "user"
)

// Decision is the outcome of a capability check.
type Decision string

const (
	// Allow permits the requested action.
	Allow Decision = "allow"

	// Deny rejects the requested action.
	Deny Decision = "deny"
)

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool {
	return d == Allow
}

// effect is a rule outcome in the capability table.
type effect int

const (
	effectDeny effect = iota
	effectAllow
)

// levelRule is one row of the ordered capability table. Rules are evaluated
// top to bottom and the first row matching both the grant level and the
// action wins. Deny rows precede every allow row so an explicit deny always
// wins a tie for the same level/action combination.
type levelRule struct {
	level   accessDomain.Level
	actions []Action
	effect  effect
}

var capabilityTable = []levelRule{
	// Explicit denies first: collaborators and viewers can never delete,
	// whatever else their level allows.
	{accessDomain.LevelCollaborator, []Action{ActionDelete}, effectDeny},
	{accessDomain.LevelViewer, []Action{ActionDelete}, effectDeny},

	// Managers hold the full capability set on their project.
	{
		accessDomain.LevelManager,
		[]Action{ActionManage, ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		effectAllow,
	},

	// Collaborators read and update.
	{accessDomain.LevelCollaborator, []Action{ActionRead, ActionUpdate}, effectAllow},

	// Viewers only read.
	{accessDomain.LevelViewer, []Action{ActionRead}, effectAllow},
}

// Resolve decides whether a principal holding the given global roles may
// perform action on a subject, given the (possibly nil) grant connecting the
// principal to the specific resource instance.
//
// The system admin role is evaluated before any resource-scoped rule and
// unconditionally allows every action on every subject, including actions the
// grant table explicitly denies for the principal's level. With no qualifying
// role and no matching grant rule the decision is Deny: absence of a grant is
// equivalent to no access.
func Resolve(
	roles []identityDomain.Role,
	action Action,
	subject Subject,
	grant *accessDomain.Grant,
) Decision {
	// Global-role shortcut, short-circuits the grant table entirely.
	for _, role := range roles {
		if role == identityDomain.RoleSystemAdmin {
			return Allow
		}
	}

	if grant == nil {
		return Deny
	}

	// Grants are resource-scoped: they say nothing about user accounts or
	// other non-project subjects.
	if subject != SubjectGrant && subject != SubjectProject {
		return Deny
	}

	for _, rule := range capabilityTable {
		if rule.level != grant.Level {
			continue
		}
		for _, a := range rule.actions {
			if a == action {
				if rule.effect == effectAllow {
					return Allow
				}
				return Deny
			}
		}
	}

	// Default-closed: no rule matched.
	return Deny
}
