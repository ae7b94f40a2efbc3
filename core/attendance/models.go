package attendance

import (
	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// FeedLimit caps the notification feed; the oldest entries are silently
// dropped on overflow.
const FeedLimit = 50

// Record is one student's attendance for one day. A (studentId, date, class)
// triple is unique: re-marking updates the stored record in place.
type Record struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Class       string `json:"class"`
	Date        string `json:"date"` // YYYY-MM-DD
	Status      string `json:"status"`
	Teacher     string `json:"teacher"`
	CreatedBy   string `json:"createdBy"`
	Time        string `json:"time,omitempty"`
}

// Notification summarizes one class/day attendance submission for the
// headmaster dashboard; one per sheet save, not per student.
type Notification struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Teacher      string `json:"teacher"`
	Class        string `json:"class"`
	PresentCount int    `json:"presentCount"`
	TotalCount   int    `json:"totalCount"`
	Date         string `json:"date"`
	Timestamp    string `json:"timestamp"`
	Message      string `json:"message"`
	Read         bool   `json:"read"`
}

// Sheet is a whole-class attendance submission for one date.
// Marks maps student ids to present (true) or absent (false); students of
// the class missing from Marks are recorded absent.
type Sheet struct {
	Class string          `json:"class" validate:"required"`
	Date  string          `json:"date" validate:"required"`
	Marks map[string]bool `json:"marks" validate:"required"`
}

func (s *Sheet) Validate() error {
	s.Class = core.CleanString(s.Class)
	s.Date = core.CleanString(s.Date)
	return core.Validate.Struct(s)
}
