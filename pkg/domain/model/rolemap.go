package model

import "github.com/campus-lab/rostersync/pkg/domain/types"

// RoleMap translates source-system role codes into target-system role IDs.
// It is loaded once per run and read-only afterwards.
type RoleMap map[types.RoleCode]types.RoleID

// Resolve returns the target role for a source code. Unrecognized codes
// resolve to RoleNone, which means "do not enrol".
func (m RoleMap) Resolve(code types.RoleCode) types.RoleID {
	return m[code]
}

// DefaultRoleMap maps the two roles nearly every feed carries and skips the
// rest. Deployments override this through the role map file.
func DefaultRoleMap() RoleMap {
	return RoleMap{
		types.RoleCodeLearner:    types.RoleID(5),
		types.RoleCodeInstructor: types.RoleID(3),
	}
}
