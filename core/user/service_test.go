package user_test

import (
	"errors"
	"testing"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/tests"
)

func TestService_Seed(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := user.NewService(store)

	if err := svc.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	users, _ := svc.QueryAll()
	if len(users) != 3 {
		t.Fatalf("Seed() created %d users, want 3", len(users))
	}

	// idempotent
	if err := svc.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	users, _ = svc.QueryAll()
	if len(users) != 3 {
		t.Errorf("second Seed() left %d users, want 3", len(users))
	}

	// default credentials work
	for _, cred := range []struct{ uname, pwd string }{
		{"headmaster", "headmaster"},
		{"teacher", "teacher"},
		{"JamesJulius", "Jam3s@Julius"},
	} {
		if _, err := svc.Authenticate(cred.uname, cred.pwd); err != nil {
			t.Errorf("Authenticate(%s) failed: %v", cred.uname, err)
		}
	}

	// a deleted default account is re-added by username, others untouched
	hm, err := svc.GetByUsername("headmaster")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if err := svc.Delete(hm.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := svc.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	users, _ = svc.QueryAll()
	if len(users) != 3 {
		t.Errorf("repair Seed() left %d users, want 3", len(users))
	}
	if _, err := svc.GetByUsername("headmaster"); err != nil {
		t.Errorf("headmaster not re-added: %v", err)
	}
}

func TestService_Create(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := user.NewService(store)

	usr, err := svc.Create(user.NewUser{
		Name:     "Jane Doe",
		Username: "jdoe",
		Password: "S3cret!word",
		Role:     user.RoleHeadmaster,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if usr.ID != "U001" {
		t.Errorf("Create() ID = %s, want U001", usr.ID)
	}
	if usr.Username != "jdoe" {
		t.Errorf("Create() Username = %s, want jdoe", usr.Username)
	}

	// duplicate username rejected
	_, err = svc.Create(user.NewUser{
		Name:     "Other",
		Username: "jdoe",
		Password: "S3cret!word",
		Role:     user.RoleGuest,
	})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}

	// teacher role requires a class
	_, err = svc.Create(user.NewUser{
		Name:     "Mary Phiri",
		Username: "mphiri",
		Password: "S3cret!word",
		Role:     user.RoleTeacher,
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
}

func TestService_Create_teacherLinkage(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := user.NewService(store)

	testutil.CreateClass(t, store, "1-A", "1", "Mary Phiri")

	// the typed username is discarded for the class's teacher name
	usr, err := svc.Create(user.NewUser{
		Name:     "Whatever Typed",
		Username: "typedname",
		Password: "S3cret!word",
		Role:     user.RoleTeacher,
		Class:    "1-A",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if usr.Username != "Mary Phiri" {
		t.Errorf("Create() Username = %s, want Mary Phiri", usr.Username)
	}

	// a matching teacher record was created and linked
	var teachers []teacher.Teacher
	store.Read(core.KeyTeachers, &teachers)
	if len(teachers) != 1 {
		t.Fatalf("got %d teacher records, want 1", len(teachers))
	}
	if teachers[0].Username != "Mary Phiri" || teachers[0].Class != "1-A" {
		t.Errorf("teacher record not linked: %+v", teachers[0])
	}

	// creating a second account for the same class collides on the forced username
	_, err = svc.Create(user.NewUser{
		Name:     "Someone Else",
		Username: "someoneelse",
		Password: "S3cret!word",
		Role:     user.RoleTeacher,
		Class:    "1-A",
	})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := user.NewService(store)
	testutil.CreateUser(t, store, "Jane Doe", "jdoe", "S3cret!word", user.RoleHeadmaster)

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		{name: "ok", uname: "jdoe", pwd: "S3cret!word"},
		{name: "unknown user", uname: "nobody", pwd: "S3cret!word", wantErr: user.ErrNotFound},
		{name: "wrong password", uname: "jdoe", pwd: "nope!!", wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(tt.uname, tt.pwd); err != tt.wantErr {
				t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_SetPassword(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := user.NewService(store)
	testutil.CreateUser(t, store, "Jane Doe", "jdoe", "S3cret!word", user.RoleHeadmaster)

	if _, err := svc.SetPassword("jdoe", "N3w!secret"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if _, err := svc.Authenticate("jdoe", "N3w!secret"); err != nil {
		t.Errorf("Authenticate() with new password failed: %v", err)
	}
	if _, err := svc.Authenticate("jdoe", "S3cret!word"); err != user.ErrNotFound {
		t.Errorf("Authenticate() with old password error = %v, want ErrNotFound", err)
	}

	if _, err := svc.SetPassword("nobody", "N3w!secret"); err != user.ErrNotFound {
		t.Errorf("SetPassword() error = %v, want ErrNotFound", err)
	}
}

func TestService_CurrentSession(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := user.NewService(store)
	usr := testutil.CreateUser(t, store, "Jane Doe", "jdoe", "S3cret!word", user.RoleHeadmaster)

	if _, ok := svc.Current(); ok {
		t.Error("Current() reported a session before login")
	}
	if !svc.SetCurrent(usr) {
		t.Fatal("SetCurrent() failed")
	}
	cur, ok := svc.Current()
	if !ok || cur.Username != "jdoe" {
		t.Errorf("Current() = %+v, %v; want jdoe session", cur, ok)
	}
	if !svc.ClearCurrent() {
		t.Fatal("ClearCurrent() failed")
	}
	if _, ok := svc.Current(); ok {
		t.Error("Current() reported a session after logout")
	}
}
