package class

import (
	"errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("class not found")

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []Class {
	var classes []Class
	svc.store.Read(core.KeyClasses, &classes)
	return classes
}

func (svc *Service) QueryAll() ([]Class, error) {
	return svc.collection(), nil
}

func (svc *Service) GetByID(id string) (Class, error) {
	for _, cls := range svc.collection() {
		if cls.ID == id {
			return cls, nil
		}
	}
	return Class{}, ErrNotFound
}

func (svc *Service) GetByName(name string) (Class, error) {
	for _, cls := range svc.collection() {
		if cls.Name == name {
			return cls, nil
		}
	}
	return Class{}, ErrNotFound
}

func (svc *Service) Create(nc NewClass) (Class, error) {
	if err := nc.Validate(); err != nil {
		return Class{}, err
	}

	classes := svc.collection()
	cls := Class{
		ID:        core.NextID("C", len(classes), 3),
		Name:      nc.FullName(),
		FormLevel: nc.FormLevel,
		Teacher:   nc.Teacher,
		Room:      nc.Room,
	}
	classes = append(classes, cls)
	if !svc.store.Write(core.KeyClasses, classes) {
		return Class{}, core.ErrStorageFailure
	}
	return cls, nil
}

// Update replaces a class's attributes. References by the old name are NOT
// repropagated: students, teachers and timetable entries keep pointing at
// the previous name.
func (svc *Service) Update(id string, nc NewClass) (Class, error) {
	if err := nc.Validate(); err != nil {
		return Class{}, err
	}

	classes := svc.collection()
	for i, cls := range classes {
		if cls.ID != id {
			continue
		}
		cls.Name = nc.FullName()
		cls.FormLevel = nc.FormLevel
		cls.Teacher = nc.Teacher
		cls.Room = nc.Room
		classes[i] = cls
		if !svc.store.Write(core.KeyClasses, classes) {
			return Class{}, core.ErrStorageFailure
		}
		return cls, nil
	}
	return Class{}, ErrNotFound
}

func (svc *Service) Delete(id string) error {
	classes := svc.collection()
	kept := classes[:0]
	for _, cls := range classes {
		if cls.ID != id {
			kept = append(kept, cls)
		}
	}
	if len(kept) == len(classes) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyClasses, kept) {
		return core.ErrStorageFailure
	}
	return nil
}
