package grade

import (
	"github.com/trezcool/shule/core"
)

// Exam types. Matching on exam type is case-insensitive.
const (
	ExamMidterm = "midterm"
	ExamFinal   = "final"
)

// Grade is one exam result for a student. A student has many, keyed by
// (studentId, examType) for upsert.
type Grade struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Class       string `json:"class"`
	Subject     string `json:"subject"`
	ExamType    string `json:"examType"`
	Marks       int    `json:"marks"`
	Grade       string `json:"grade"`
	Teacher     string `json:"teacher,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// NewGrade contains information needed to record an exam result.
type NewGrade struct {
	StudentID string `json:"studentId" validate:"required"`
	ExamType  string `json:"examType" validate:"required"`
	Marks     int    `json:"marks" validate:"gte=0,lte=100"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	CreatedBy string `json:"createdBy"`
}

func (ng *NewGrade) Validate() error {
	ng.StudentID = core.CleanString(ng.StudentID)
	ng.ExamType = core.CleanString(ng.ExamType)
	ng.Subject = core.CleanString(ng.Subject)
	return core.Validate.Struct(ng)
}

// Letter converts marks into a letter grade.
func Letter(marks int) string {
	switch {
	case marks >= 90:
		return "A"
	case marks >= 80:
		return "B"
	case marks >= 70:
		return "C"
	case marks >= 60:
		return "D"
	default:
		return "F"
	}
}
