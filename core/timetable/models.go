package timetable

import (
	"github.com/trezcool/shule/core"
)

// Entry is one timetable slot. A class and a teacher may hold any number of
// entries; no overlap or conflict checking is performed, duplicates are
// allowed.
type Entry struct {
	ID        string `json:"id"`
	Class     string `json:"class"`
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// NewEntry contains information needed to create a timetable Entry.
type NewEntry struct {
	Class     string `json:"class" validate:"required"`
	Day       string `json:"day" validate:"required"`
	Start     string `json:"start" validate:"required"`
	End       string `json:"end" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Teacher   string `json:"teacher" validate:"required"`
	CreatedBy string `json:"createdBy"`
}

func (ne *NewEntry) Validate() error {
	ne.Class = core.CleanString(ne.Class)
	ne.Day = core.CleanString(ne.Day)
	ne.Start = core.CleanString(ne.Start)
	ne.End = core.CleanString(ne.End)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Teacher = core.CleanString(ne.Teacher)
	return core.Validate.Struct(ne)
}
