package teacher

import (
	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Teacher is a staff record. Username links it to a teacher-role user
// account; Class links it to a class by name. Both links are optional.
type Teacher struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	Username   string `json:"username,omitempty"`
	Class      string `json:"class,omitempty"`
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Department = core.CleanString(nt.Department)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Phone = core.CleanString(nt.Phone)
	return core.Validate.Struct(nt)
}
