package interfaces

// Repository defines the interface for the persistent entity store the
// reconciler works against. Entity lookups return (nil, nil) when nothing
// matches; errors are reserved for store failures. None of the operations are
// atomic across calls, so concurrent runs against the same store are not
// supported. The caller serializes runs.
type Repository interface {
	Course() CourseRepository
	Category() CategoryRepository
	User() UserRepository
	Group() GroupRepository
	Enrolment() EnrolmentRepository
	Ledger() LedgerRepository

	Close() error
}
