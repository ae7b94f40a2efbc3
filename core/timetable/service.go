package timetable

import (
	"errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("timetable entry not found")

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []Entry {
	var entries []Entry
	svc.store.Read(core.KeyTimetables, &entries)
	return entries
}

func (svc *Service) QueryAll() ([]Entry, error) {
	return svc.collection(), nil
}

func (svc *Service) QueryByClass(className string) ([]Entry, error) {
	var entries []Entry
	for _, e := range svc.collection() {
		if e.Class == className {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (svc *Service) Create(ne NewEntry) (Entry, error) {
	if err := ne.Validate(); err != nil {
		return Entry{}, err
	}

	entries := svc.collection()
	e := Entry{
		ID:        core.NextID("", len(entries), 3),
		Class:     ne.Class,
		Day:       ne.Day,
		Start:     ne.Start,
		End:       ne.End,
		Subject:   ne.Subject,
		Teacher:   ne.Teacher,
		CreatedBy: ne.CreatedBy,
	}
	entries = append(entries, e)
	if !svc.store.Write(core.KeyTimetables, entries) {
		return Entry{}, core.ErrStorageFailure
	}
	return e, nil
}

func (svc *Service) Update(id string, ne NewEntry) (Entry, error) {
	if err := ne.Validate(); err != nil {
		return Entry{}, err
	}

	entries := svc.collection()
	for i, e := range entries {
		if e.ID != id {
			continue
		}
		e.Class = ne.Class
		e.Day = ne.Day
		e.Start = ne.Start
		e.End = ne.End
		e.Subject = ne.Subject
		e.Teacher = ne.Teacher
		entries[i] = e
		if !svc.store.Write(core.KeyTimetables, entries) {
			return Entry{}, core.ErrStorageFailure
		}
		return e, nil
	}
	return Entry{}, ErrNotFound
}

func (svc *Service) Delete(id string) error {
	entries := svc.collection()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyTimetables, kept) {
		return core.ErrStorageFailure
	}
	return nil
}
