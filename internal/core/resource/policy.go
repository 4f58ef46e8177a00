package resource

import "github.com/zebrands/catalog-api/internal/core/domain"

// Operation names one of the five resource operations.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Access is the authorization requirement of an operation. The zero value
// requires authentication, so an operation missing from a Policy is closed.
type Access int

const (
	Authenticated Access = iota
	Public
)

// Policy maps each operation to its access requirement.
type Policy map[Operation]Access

// Private returns a policy that requires authentication for every operation.
func Private() Policy {
	return Policy{}
}

// Permits reports whether caller may run op.
func (p Policy) Permits(op Operation, caller domain.Caller) bool {
	if p[op] == Public {
		return true
	}
	return caller.Authenticated()
}

// Mode selects how a field set is applied to an existing row.
type Mode int

const (
	// FullReplace requires every client-writable field.
	FullReplace Mode = iota
	// PartialUpdate accepts any non-empty subset and keeps the rest.
	PartialUpdate
)

func (m Mode) String() string {
	if m == PartialUpdate {
		return "partial"
	}
	return "full"
}
