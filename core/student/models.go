package student

import (
	"github.com/trezcool/shule/core"
)

// Student belongs to a class by name (soft reference); deleting or renaming
// the class does not touch the student.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name  string `json:"name" validate:"required"`
	Class string `json:"class" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Class = core.CleanString(ns.Class)
	return core.Validate.Struct(ns)
}
