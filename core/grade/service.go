package grade

import (
	"errors"
	"strings"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var ErrNotFound = errors.New("grade not found")

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []Grade {
	var grades []Grade
	svc.store.Read(core.KeyGrades, &grades)
	return grades
}

func (svc *Service) QueryAll() ([]Grade, error) {
	return svc.collection(), nil
}

func (svc *Service) QueryByStudent(studentID string) ([]Grade, error) {
	var grades []Grade
	for _, g := range svc.collection() {
		if g.StudentID == studentID {
			grades = append(grades, g)
		}
	}
	return grades, nil
}

// Upsert records an exam result. A grade already stored for the same
// (studentId, examType) pair is updated in place rather than appended;
// exam type matching is case-insensitive.
func (svc *Service) Upsert(ng NewGrade) (Grade, error) {
	if err := ng.Validate(); err != nil {
		return Grade{}, err
	}
	letter := Letter(ng.Marks)

	grades := svc.collection()
	for i, g := range grades {
		if g.StudentID != ng.StudentID || !strings.EqualFold(g.ExamType, ng.ExamType) {
			continue
		}
		g.Marks = ng.Marks
		g.Grade = letter
		g.ExamType = ng.ExamType
		if ng.Subject != "" {
			g.Subject = ng.Subject
		}
		grades[i] = g
		if !svc.store.Write(core.KeyGrades, grades) {
			return Grade{}, core.ErrStorageFailure
		}
		return g, nil
	}

	// denormalize student name/class; absent student is tolerated
	var studentName, className string
	var students []student.Student
	svc.store.Read(core.KeyStudents, &students)
	for _, std := range students {
		if std.ID == ng.StudentID {
			studentName = std.Name
			className = std.Class
			break
		}
	}

	g := Grade{
		ID:          core.NextID("", len(grades), 3),
		StudentID:   ng.StudentID,
		StudentName: studentName,
		Class:       className,
		Subject:     ng.Subject,
		ExamType:    ng.ExamType,
		Marks:       ng.Marks,
		Grade:       letter,
		Teacher:     ng.Teacher,
		CreatedBy:   ng.CreatedBy,
	}
	grades = append(grades, g)
	if !svc.store.Write(core.KeyGrades, grades) {
		return Grade{}, core.ErrStorageFailure
	}
	return g, nil
}
