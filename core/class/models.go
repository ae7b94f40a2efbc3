package class

import (
	"github.com/trezcool/shule/core"
)

// Class is a school class (eg. "Form 1-A").
//
// Name is the join key used by students, teachers and timetable entries;
// renaming a class leaves those references pointing at the old name.
type Class struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FormLevel string `json:"formLevel"`
	Teacher   string `json:"teacher"`
	Room      string `json:"room"`
}

// NewClass contains information needed to create a new Class.
// Name is the class letter only (eg. "A"); the stored full name is
// composed as "Form <FormLevel>-<Name>".
type NewClass struct {
	FormLevel string `json:"formLevel" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Teacher   string `json:"teacher"`
	Room      string `json:"room"`
}

func (nc *NewClass) Validate() error {
	nc.FormLevel = core.CleanString(nc.FormLevel)
	nc.Name = core.CleanString(nc.Name)
	nc.Teacher = core.CleanString(nc.Teacher)
	nc.Room = core.CleanString(nc.Room)
	return core.Validate.Struct(nc)
}

// FullName composes the stored class name.
func (nc *NewClass) FullName() string {
	return "Form " + nc.FormLevel + "-" + nc.Name
}
