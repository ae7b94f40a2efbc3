package fee

import (
	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Fee is a student's fee record. A student has at most one; a student with
// no record at all is treated as implicitly pending.
//
// StudentName and Class are denormalized from the student at payment time.
// Amount is stored as a string; non-numeric values count as 0 in summaries.
type Fee struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Class       string `json:"class"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	DatePaid    string `json:"datePaid"`
}

// Payment contains information needed to mark a student's fee as paid.
type Payment struct {
	StudentID   string `json:"studentId" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Class       string `json:"class"`
	Amount      string `json:"amount" validate:"required,number"`
}

func (p *Payment) Validate() error {
	p.StudentID = core.CleanString(p.StudentID)
	p.StudentName = core.CleanString(p.StudentName)
	p.Class = core.CleanString(p.Class)
	p.Amount = core.CleanString(p.Amount)
	return core.Validate.Struct(p)
}
