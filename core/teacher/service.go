package teacher

import (
	"errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("teacher not found")

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []Teacher {
	var teachers []Teacher
	svc.store.Read(core.KeyTeachers, &teachers)
	return teachers
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.collection(), nil
}

func (svc *Service) GetByID(id string) (Teacher, error) {
	for _, tchr := range svc.collection() {
		if tchr.ID == id {
			return tchr, nil
		}
	}
	return Teacher{}, ErrNotFound
}

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(); err != nil {
		return Teacher{}, err
	}

	teachers := svc.collection()
	tchr := Teacher{
		ID:         core.NextID("T", len(teachers), 3),
		Name:       nt.Name,
		Department: nt.Department,
		Email:      nt.Email,
		Phone:      nt.Phone,
		Status:     StatusActive,
	}
	teachers = append(teachers, tchr)
	if !svc.store.Write(core.KeyTeachers, teachers) {
		return Teacher{}, core.ErrStorageFailure
	}
	return tchr, nil
}

func (svc *Service) Update(id string, nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(); err != nil {
		return Teacher{}, err
	}

	teachers := svc.collection()
	for i, tchr := range teachers {
		if tchr.ID != id {
			continue
		}
		tchr.Name = nt.Name
		tchr.Department = nt.Department
		tchr.Email = nt.Email
		tchr.Phone = nt.Phone
		teachers[i] = tchr
		if !svc.store.Write(core.KeyTeachers, teachers) {
			return Teacher{}, core.ErrStorageFailure
		}
		return tchr, nil
	}
	return Teacher{}, ErrNotFound
}

func (svc *Service) Delete(id string) error {
	teachers := svc.collection()
	kept := teachers[:0]
	for _, tchr := range teachers {
		if tchr.ID != id {
			kept = append(kept, tchr)
		}
	}
	if len(kept) == len(teachers) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyTeachers, kept) {
		return core.ErrStorageFailure
	}
	return nil
}
