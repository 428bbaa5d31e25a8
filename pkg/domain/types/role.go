package types

// RoleCode is a source-system (IMS Enterprise) role type code, e.g. "01" for
// Learner and "02" for Instructor.
type RoleCode string

const (
	RoleCodeLearner           RoleCode = "01"
	RoleCodeInstructor        RoleCode = "02"
	RoleCodeContentDeveloper  RoleCode = "03"
	RoleCodeMember            RoleCode = "04"
	RoleCodeManager           RoleCode = "05"
	RoleCodeMentor            RoleCode = "06"
	RoleCodeAdministrator     RoleCode = "07"
	RoleCodeTeachingAssistant RoleCode = "08"
)

// String returns the string representation of RoleCode
func (c RoleCode) String() string {
	return string(c)
}

// Name returns the IMS Enterprise role name for the code, or empty string for
// an unrecognized code.
func (c RoleCode) Name() string {
	return roleNames[c]
}

var roleNames = map[RoleCode]string{
	RoleCodeLearner:           "Learner",
	RoleCodeInstructor:        "Instructor",
	RoleCodeContentDeveloper:  "Content Developer",
	RoleCodeMember:            "Member",
	RoleCodeManager:           "Manager",
	RoleCodeMentor:            "Mentor",
	RoleCodeAdministrator:     "Administrator",
	RoleCodeTeachingAssistant: "TeachingAssistant",
}

// AllRoleCodes returns the fixed enumeration of role codes the system
// recognizes, in code order.
func AllRoleCodes() []RoleCode {
	return []RoleCode{
		RoleCodeLearner,
		RoleCodeInstructor,
		RoleCodeContentDeveloper,
		RoleCodeMember,
		RoleCodeManager,
		RoleCodeMentor,
		RoleCodeAdministrator,
		RoleCodeTeachingAssistant,
	}
}

// RoleID is a target-system role identifier. RoleNone (zero) means the role
// is not mapped and members carrying it must not be enrolled.
type RoleID int

// RoleNone marks a role code that should be skipped during enrolment
const RoleNone RoleID = 0

// IsNone reports whether the role means "do not enrol"
func (r RoleID) IsNone() bool {
	return r == RoleNone
}
