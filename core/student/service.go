package student

import (
	"errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/fee"
)

var ErrNotFound = errors.New("student not found")

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []Student {
	var students []Student
	svc.store.Read(core.KeyStudents, &students)
	return students
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.collection(), nil
}

func (svc *Service) GetByID(id string) (Student, error) {
	for _, std := range svc.collection() {
		if std.ID == id {
			return std, nil
		}
	}
	return Student{}, ErrNotFound
}

func (svc *Service) QueryByClass(className string) ([]Student, error) {
	var students []Student
	for _, std := range svc.collection() {
		if std.Class == className {
			students = append(students, std)
		}
	}
	return students, nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}

	students := svc.collection()
	std := Student{
		ID:    core.NextID("", len(students), 3),
		Name:  ns.Name,
		Class: ns.Class,
	}
	students = append(students, std)
	if !svc.store.Write(core.KeyStudents, students) {
		return Student{}, core.ErrStorageFailure
	}
	return std, nil
}

func (svc *Service) Update(id string, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}

	students := svc.collection()
	for i, std := range students {
		if std.ID != id {
			continue
		}
		std.Name = ns.Name
		std.Class = ns.Class
		students[i] = std
		if !svc.store.Write(core.KeyStudents, students) {
			return Student{}, core.ErrStorageFailure
		}
		return std, nil
	}
	return Student{}, ErrNotFound
}

// Delete removes a student and cascades to their fee record, if any.
// Grade and attendance history referencing the student are left untouched.
func (svc *Service) Delete(id string) error {
	students := svc.collection()
	kept := students[:0]
	for _, std := range students {
		if std.ID != id {
			kept = append(kept, std)
		}
	}
	if len(kept) == len(students) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyStudents, kept) {
		return core.ErrStorageFailure
	}

	var fees []fee.Fee
	svc.store.Read(core.KeyFees, &fees)
	keptFees := fees[:0]
	for _, f := range fees {
		if f.StudentID != id {
			keptFees = append(keptFees, f)
		}
	}
	if !svc.store.Write(core.KeyFees, keptFees) {
		return core.ErrStorageFailure
	}
	return nil
}
