package student_test

import (
	"testing"

	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/tests"
)

func TestService_Create(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := student.NewService(store)

	std, err := svc.Create(student.NewStudent{Name: "Amara Moyo", Class: "1-A"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if std.ID != "001" {
		t.Errorf("Create() ID = %s, want 001", std.ID)
	}

	std2, err := svc.Create(student.NewStudent{Name: "Brian Ncube", Class: "1-A"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if std2.ID != "002" {
		t.Errorf("Create() ID = %s, want 002", std2.ID)
	}

	// missing fields rejected
	if _, err := svc.Create(student.NewStudent{Name: "No Class"}); err == nil {
		t.Error("Create() accepted a student without a class")
	}
}

func TestService_QueryByClass(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := student.NewService(store)

	testutil.CreateStudent(t, store, "Amara Moyo", "1-A")
	testutil.CreateStudent(t, store, "Brian Ncube", "2-B")
	testutil.CreateStudent(t, store, "Chipo Dube", "1-A")

	students, err := svc.QueryByClass("1-A")
	if err != nil {
		t.Fatalf("QueryByClass() failed: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("QueryByClass() returned %d students, want 2", len(students))
	}
}

func TestService_Delete_cascadesFees(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := student.NewService(store)

	std := testutil.CreateStudent(t, store, "Amara Moyo", "1-A")
	other := testutil.CreateStudent(t, store, "Brian Ncube", "1-A")

	feeSvc := fee.NewService(store)
	if _, err := feeSvc.MarkPaid(fee.Payment{StudentID: std.ID, StudentName: std.Name, Class: std.Class, Amount: "200"}); err != nil {
		t.Fatalf("MarkPaid() failed: %v", err)
	}
	if _, err := feeSvc.MarkPaid(fee.Payment{StudentID: other.ID, StudentName: other.Name, Class: other.Class, Amount: "300"}); err != nil {
		t.Fatalf("MarkPaid() failed: %v", err)
	}

	gradeSvc := grade.NewService(store)
	if _, err := gradeSvc.Upsert(grade.NewGrade{StudentID: std.ID, ExamType: grade.ExamMidterm, Marks: 85}); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	if err := svc.Delete("999"); err != student.ErrNotFound {
		t.Errorf("Delete(unknown) error = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(std.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := svc.GetByID(std.ID); err != student.ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}

	// the student's fee record is gone, the other student's survives
	if _, err := feeSvc.GetByStudent(std.ID); err != fee.ErrNotFound {
		t.Errorf("GetByStudent() error = %v, want ErrNotFound", err)
	}
	if _, err := feeSvc.GetByStudent(other.ID); err != nil {
		t.Errorf("GetByStudent(other) failed: %v", err)
	}

	// grade history is kept
	grades, _ := gradeSvc.QueryByStudent(std.ID)
	if len(grades) != 1 {
		t.Errorf("got %d grades after delete, want 1", len(grades))
	}
}
