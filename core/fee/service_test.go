package fee_test

import (
	"testing"
	"time"

	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/tests"
)

func TestService_MarkPaid(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := fee.NewService(store)

	fee.NowFunc = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }
	defer func() { fee.NowFunc = time.Now }()

	f, err := svc.MarkPaid(fee.Payment{StudentID: "001", StudentName: "Amara Moyo", Class: "1-A", Amount: "200"})
	if err != nil {
		t.Fatalf("MarkPaid() failed: %v", err)
	}
	if f.ID != "001" {
		t.Errorf("MarkPaid() ID = %s, want 001", f.ID)
	}
	if f.Status != fee.StatusPaid {
		t.Errorf("MarkPaid() Status = %s, want %s", f.Status, fee.StatusPaid)
	}
	if f.DatePaid != "03/09/2026" {
		t.Errorf("MarkPaid() DatePaid = %s, want 03/09/2026", f.DatePaid)
	}

	// paying again updates the existing record in place
	f2, err := svc.MarkPaid(fee.Payment{StudentID: "001", StudentName: "Amara Moyo", Class: "1-A", Amount: "350"})
	if err != nil {
		t.Fatalf("MarkPaid() failed: %v", err)
	}
	if f2.ID != f.ID {
		t.Errorf("MarkPaid() replaced ID %s with %s, want update in place", f.ID, f2.ID)
	}
	if f2.Amount != "350" {
		t.Errorf("MarkPaid() Amount = %s, want 350", f2.Amount)
	}
	fees, _ := svc.QueryAll()
	if len(fees) != 1 {
		t.Errorf("got %d fee records, want 1", len(fees))
	}

	// non-numeric amounts rejected
	if _, err := svc.MarkPaid(fee.Payment{StudentID: "002", StudentName: "Brian Ncube", Amount: "lots"}); err == nil {
		t.Error("MarkPaid() accepted a non-numeric amount")
	}
}

func TestService_Delete(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := fee.NewService(store)

	if _, err := svc.MarkPaid(fee.Payment{StudentID: "001", StudentName: "Amara Moyo", Amount: "200"}); err != nil {
		t.Fatalf("MarkPaid() failed: %v", err)
	}
	if err := svc.Delete("001"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByStudent("001"); err != fee.ErrNotFound {
		t.Errorf("GetByStudent() error = %v, want ErrNotFound", err)
	}

	// deleting an absent record is a no-op
	if err := svc.Delete("999"); err != nil {
		t.Errorf("Delete() failed: %v", err)
	}
}
