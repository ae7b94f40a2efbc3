package activity_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/tests"
)

func TestService_Record(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := activity.NewService(store, activity.HeadmasterLimit)

	for i := 0; i < activity.HeadmasterLimit+2; i++ {
		if _, err := svc.Record("🎓", fmt.Sprintf("event %d", i)); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	acts, _ := svc.QueryAll()
	if len(acts) != activity.HeadmasterLimit {
		t.Fatalf("got %d activities, want %d", len(acts), activity.HeadmasterLimit)
	}
	// newest first
	if acts[0].Text != fmt.Sprintf("event %d", activity.HeadmasterLimit+1) {
		t.Errorf("newest activity = %q", acts[0].Text)
	}
	// oldest entries were evicted
	for _, a := range acts {
		if a.Text == "event 0" || a.Text == "event 1" {
			t.Errorf("activity %q was not evicted", a.Text)
		}
	}
}

func TestService_RemoveAndClear(t *testing.T) {
	store := testutil.PrepareStore(t)
	svc := activity.NewService(store, activity.TeacherLimit)

	// feed IDs are millisecond timestamps; tick the clock so they differ
	now := time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)
	activity.NowFunc = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	defer func() { activity.NowFunc = time.Now }()

	a1, err := svc.Record("📊", "saved a grade")
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := svc.Record("✅", "marked attendance"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if err := svc.Remove("0"); err != activity.ErrNotFound {
		t.Errorf("Remove(unknown) error = %v, want ErrNotFound", err)
	}

	if err := svc.Remove(a1.ID); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	acts, _ := svc.QueryAll()
	if len(acts) != 1 {
		t.Fatalf("got %d activities after remove, want 1", len(acts))
	}
	if acts[0].Text != "marked attendance" {
		t.Errorf("kept activity = %q, want the other entry", acts[0].Text)
	}

	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if acts, _ := svc.QueryAll(); len(acts) != 0 {
		t.Errorf("got %d activities after clear, want 0", len(acts))
	}
}
