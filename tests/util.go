package testutil

import (
	"testing"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/kv"
)

// PrepareStore returns a file-backed store rooted in a fresh temp directory
// that is cleaned up with the test.
func PrepareStore(t *testing.T) core.Store {
	t.Helper()
	db, err := kv.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("PrepareStore() failed: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, store core.Store, name, uname, pwd, role string) user.User {
	t.Helper()
	usr := user.User{
		Username: uname,
		Name:     name,
		Role:     role,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}

	var users []user.User
	store.Read(core.KeyUsers, &users)
	usr.ID = core.NextID("U", len(users), 3)
	if !store.Write(core.KeyUsers, append(users, usr)) {
		t.Fatal("CreateUser() failed: write failed")
	}
	return usr
}

func CreateClass(t *testing.T, store core.Store, name, formLevel, teacherName string) class.Class {
	t.Helper()
	var classes []class.Class
	store.Read(core.KeyClasses, &classes)

	cls := class.Class{
		ID:        core.NextID("C", len(classes), 3),
		Name:      name,
		FormLevel: formLevel,
		Teacher:   teacherName,
	}
	if !store.Write(core.KeyClasses, append(classes, cls)) {
		t.Fatal("CreateClass() failed: write failed")
	}
	return cls
}

func CreateStudent(t *testing.T, store core.Store, name, className string) student.Student {
	t.Helper()
	var students []student.Student
	store.Read(core.KeyStudents, &students)

	std := student.Student{
		ID:    core.NextID("", len(students), 3),
		Name:  name,
		Class: className,
	}
	if !store.Write(core.KeyStudents, append(students, std)) {
		t.Fatal("CreateStudent() failed: write failed")
	}
	return std
}
