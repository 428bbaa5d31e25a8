package types

// RecStatus is the IMS Enterprise record status attribute. The feed uses it
// to signal the intent of a record; 3 conventionally means delete/remove.
type RecStatus int

const (
	RecStatusNone   RecStatus = 0
	RecStatusAdd    RecStatus = 1
	RecStatusUpdate RecStatus = 2
	RecStatusDelete RecStatus = 3
)

// IsDelete reports whether the record requests deletion of its entity
func (s RecStatus) IsDelete() bool {
	return s == RecStatusDelete
}
