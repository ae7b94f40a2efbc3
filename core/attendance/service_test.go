package attendance_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/tests"
)

func TestService_SaveSheet(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := attendance.NewService(store, nil)

	std1 := testutil.CreateStudent(t, store, "Amara Moyo", "1-A")
	std2 := testutil.CreateStudent(t, store, "Brian Ncube", "1-A")
	testutil.CreateStudent(t, store, "Chipo Dube", "2-B")

	attendance.NowFunc = func() time.Time { return time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC) }
	defer func() { attendance.NowFunc = time.Now }()

	sheet := attendance.Sheet{
		Class: "1-A",
		Date:  "2026-03-09",
		Marks: map[string]bool{std1.ID: true, std2.ID: false},
	}
	notif, err := svc.SaveSheet(sheet, "Mary Phiri", "mphiri")
	if err != nil {
		t.Fatalf("SaveSheet() failed: %v", err)
	}

	if notif.PresentCount != 1 || notif.TotalCount != 2 {
		t.Errorf("notification counts = %d/%d, want 1/2", notif.PresentCount, notif.TotalCount)
	}
	wantMsg := "Mary Phiri marked attendance for 1-A: 1/2 students present"
	if notif.Message != wantMsg {
		t.Errorf("notification Message = %q, want %q", notif.Message, wantMsg)
	}
	if notif.ID != "N00001" {
		t.Errorf("notification ID = %s, want N00001", notif.ID)
	}

	// one record per student of the class, none for the other class
	records, _ := svc.QueryAll()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	byStudent := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byStudent[rec.StudentID] = rec
	}
	if byStudent[std1.ID].Status != attendance.StatusPresent {
		t.Errorf("status = %s, want present", byStudent[std1.ID].Status)
	}
	if byStudent[std2.ID].Status != attendance.StatusAbsent {
		t.Errorf("status = %s, want absent", byStudent[std2.ID].Status)
	}
	if byStudent[std1.ID].CreatedBy != "mphiri" {
		t.Errorf("createdBy = %s, want mphiri", byStudent[std1.ID].CreatedBy)
	}

	// resubmitting the same sheet updates records in place
	firstID := byStudent[std1.ID].ID
	sheet.Marks[std1.ID] = false
	if _, err := svc.SaveSheet(sheet, "Mary Phiri", "mphiri"); err != nil {
		t.Fatalf("SaveSheet() failed: %v", err)
	}
	records, _ = svc.QueryAll()
	if len(records) != 2 {
		t.Fatalf("resubmit left %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.StudentID == std1.ID {
			if rec.ID != firstID {
				t.Errorf("resubmit replaced ID %s with %s, want update in place", firstID, rec.ID)
			}
			if rec.Status != attendance.StatusAbsent {
				t.Errorf("resubmit status = %s, want absent", rec.Status)
			}
		}
	}
}

func TestService_SaveSheet_emptyClass(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := attendance.NewService(store, nil)

	sheet := attendance.Sheet{Class: "1-A", Date: "2026-03-09", Marks: map[string]bool{}}
	_, err := svc.SaveSheet(sheet, "Mary Phiri", "mphiri")

	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("SaveSheet() error = %v, want ValidationError", err)
	}
}

func TestService_notificationFeedCap(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := attendance.NewService(store, nil)

	std := testutil.CreateStudent(t, store, "Amara Moyo", "1-A")

	// one notification per save; the feed holds the newest FeedLimit only
	for i := 0; i < attendance.FeedLimit+1; i++ {
		sheet := attendance.Sheet{
			Class: "1-A",
			Date:  fmt.Sprintf("2026-03-%02d", i+1),
			Marks: map[string]bool{std.ID: true},
		}
		if _, err := svc.SaveSheet(sheet, "Mary Phiri", "mphiri"); err != nil {
			t.Fatalf("SaveSheet() failed: %v", err)
		}
	}

	notifs := svc.Notifications()
	if len(notifs) != attendance.FeedLimit {
		t.Fatalf("got %d notifications, want %d", len(notifs), attendance.FeedLimit)
	}
	// newest first: the last submitted date leads, the first is evicted
	if notifs[0].Date != fmt.Sprintf("2026-03-%02d", attendance.FeedLimit+1) {
		t.Errorf("newest notification Date = %s, want 2026-03-%02d", notifs[0].Date, attendance.FeedLimit+1)
	}
	for _, n := range notifs {
		if n.Date == "2026-03-01" {
			t.Error("oldest notification was not evicted")
		}
	}
}

func TestService_RemoveAndClearNotifications(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := attendance.NewService(store, nil)

	std := testutil.CreateStudent(t, store, "Amara Moyo", "1-A")
	for _, date := range []string{"2026-03-01", "2026-03-02"} {
		sheet := attendance.Sheet{Class: "1-A", Date: date, Marks: map[string]bool{std.ID: true}}
		if _, err := svc.SaveSheet(sheet, "Mary Phiri", "mphiri"); err != nil {
			t.Fatalf("SaveSheet() failed: %v", err)
		}
	}

	notifs := svc.Notifications()
	if len(notifs) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifs))
	}

	if err := svc.RemoveNotification("N99999"); err != attendance.ErrNotFound {
		t.Errorf("RemoveNotification(unknown) error = %v, want ErrNotFound", err)
	}

	if err := svc.RemoveNotification(notifs[0].ID); err != nil {
		t.Fatalf("RemoveNotification() failed: %v", err)
	}
	if got := svc.Notifications(); len(got) != 1 {
		t.Errorf("got %d notifications after remove, want 1", len(got))
	}

	if err := svc.ClearNotifications(); err != nil {
		t.Fatalf("ClearNotifications() failed: %v", err)
	}
	if got := svc.Notifications(); len(got) != 0 {
		t.Errorf("got %d notifications after clear, want 0", len(got))
	}
}
