// Package role defines the firm's authorization roles and the capability
// policy evaluated by every state-transition in the core.
package role

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// Role identifies a staff member's position in the firm.
type Role string

const (
	RoleChiefArchitect  Role = "chief_architect"
	RoleJuniorArchitect Role = "junior_architect"
	RoleIntern          Role = "intern"
)

// legacyJuniorAlias is an old literal that leaked into a few stored records
// and tokens. It is normalized on parse and never written back.
const legacyJuniorAlias = "jr_architect"

// Parse validates a role string from an external boundary (JWT claim,
// database row). Unknown roles are rejected rather than defaulted.
func Parse(s string) (Role, error) {
	switch s {
	case string(RoleChiefArchitect):
		return RoleChiefArchitect, nil
	case string(RoleJuniorArchitect), legacyJuniorAlias:
		return RoleJuniorArchitect, nil
	case string(RoleIntern):
		return RoleIntern, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := Parse(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// Scan implements sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*r = parsed
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*r = parsed
	default:
		return fmt.Errorf("cannot scan role from %T", src)
	}
	return nil
}

// Value implements driver.Valuer interface
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// CanCreateTask reports whether the role may create and assign tasks to
// other staff.
func (r Role) CanCreateTask() bool {
	return r == RoleChiefArchitect || r == RoleJuniorArchitect
}

// CanAssignTasks mirrors CanCreateTask; assignment is part of task creation
// and editing.
func (r Role) CanAssignTasks() bool {
	return r.CanCreateTask()
}

// CanSelfAssign reports whether the role may pick up a task for itself.
func (r Role) CanSelfAssign() bool {
	return r == RoleJuniorArchitect || r == RoleIntern
}

// CanRequestClearance reports whether the role may open a clearance request.
// The chief resolves clearances and never requests them.
func (r Role) CanRequestClearance() bool {
	return r == RoleJuniorArchitect || r == RoleIntern
}

// CanResolveClearance reports whether the role may approve or reject a
// clearance request.
func (r Role) CanResolveClearance() bool {
	return r == RoleChiefArchitect
}

// CanManageFinancials reports whether the role may create or modify
// invoices and other financial records.
func (r Role) CanManageFinancials() bool {
	return r == RoleChiefArchitect || r == RoleJuniorArchitect
}

// CanManageDocuments reports whether the role may edit or delete documents
// and gallery images. Viewing and downloading is open to all staff.
func (r Role) CanManageDocuments() bool {
	return r.Valid()
}

// CanSendCustomAlert reports whether the role may compose ad-hoc alerts.
func (r Role) CanSendCustomAlert() bool {
	return r == RoleChiefArchitect
}

// Actor is an authenticated staff member acting on the system.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
