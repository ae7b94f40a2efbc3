package attendance

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var (
	ErrNotFound = errors.New("attendance record not found")

	NowFunc = time.Now // mockable
)

type Service struct {
	store   core.Store
	mailSvc core.EmailService // optional; nil disables headmaster emails
}

func NewService(store core.Store, mailSvc core.EmailService) *Service {
	return &Service{store: store, mailSvc: mailSvc}
}

func (svc *Service) collection() []Record {
	var records []Record
	svc.store.Read(core.KeyAttendance, &records)
	return records
}

func (svc *Service) QueryAll() ([]Record, error) {
	return svc.collection(), nil
}

// SaveSheet records a whole-class attendance submission made by a teacher
// session. Each student of the class gets one record upserted on
// (studentId, date, class); a single notification summarizing the sheet is
// prepended to the headmaster feed, which is truncated to FeedLimit.
func (svc *Service) SaveSheet(sheet Sheet, teacherName, username string) (Notification, error) {
	if err := sheet.Validate(); err != nil {
		return Notification{}, err
	}

	var students []student.Student
	svc.store.Read(core.KeyStudents, &students)
	var roster []student.Student
	for _, std := range students {
		if std.Class == sheet.Class {
			roster = append(roster, std)
		}
	}
	if len(roster) == 0 {
		return Notification{}, core.NewValidationError(
			errors.New("no students in this class"),
			core.FieldError{Field: "class", Error: "no students in this class"},
		)
	}

	now := NowFunc()
	timeStr := now.Format("1/2/2006, 3:04:05 PM")

	records := svc.collection()
	var presentCount int
	for _, std := range roster {
		status := StatusAbsent
		if sheet.Marks[std.ID] {
			status = StatusPresent
			presentCount++
		}

		updated := false
		for i, rec := range records {
			if rec.StudentID == std.ID && rec.Date == sheet.Date && rec.Class == sheet.Class {
				rec.StudentName = std.Name
				rec.Status = status
				rec.Teacher = teacherName
				rec.CreatedBy = username
				rec.Time = timeStr
				records[i] = rec
				updated = true
				break
			}
		}
		if !updated {
			records = append(records, Record{
				ID:          core.NextID("A", len(records), 3),
				StudentID:   std.ID,
				StudentName: std.Name,
				Class:       sheet.Class,
				Date:        sheet.Date,
				Status:      status,
				Teacher:     teacherName,
				CreatedBy:   username,
				Time:        timeStr,
			})
		}
	}
	if !svc.store.Write(core.KeyAttendance, records) {
		return Notification{}, core.ErrStorageFailure
	}

	notifs := svc.Notifications()
	notif := Notification{
		ID:           core.NextID("N", len(notifs), 5),
		Type:         "attendance",
		Teacher:      teacherName,
		Class:        sheet.Class,
		PresentCount: presentCount,
		TotalCount:   len(roster),
		Date:         sheet.Date,
		Timestamp:    timeStr,
		Message: fmt.Sprintf("%s marked attendance for %s: %d/%d students present",
			teacherName, sheet.Class, presentCount, len(roster)),
		Read: false,
	}
	notifs = append([]Notification{notif}, notifs...)
	if len(notifs) > FeedLimit {
		notifs = notifs[:FeedLimit]
	}
	if !svc.store.Write(core.KeyNotifications, notifs) {
		return Notification{}, core.ErrStorageFailure
	}

	svc.notifyHeadmaster(notif)
	return notif, nil
}

func (svc *Service) notifyHeadmaster(notif Notification) {
	if svc.mailSvc == nil || core.Conf.HeadmasterEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: core.Conf.HeadmasterEmail}},
		Subject: fmt.Sprintf("Attendance marked - %s", notif.Class),
		BodyStr: notif.Message,
	})
}

// Notifications returns the feed, newest first.
func (svc *Service) Notifications() []Notification {
	var notifs []Notification
	svc.store.Read(core.KeyNotifications, &notifs)
	return notifs
}

func (svc *Service) RemoveNotification(id string) error {
	notifs := svc.Notifications()
	kept := notifs[:0]
	for _, n := range notifs {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notifs) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyNotifications, kept) {
		return core.ErrStorageFailure
	}
	return nil
}

// ClearNotifications replaces the feed with an empty one; there is no undo.
func (svc *Service) ClearNotifications() error {
	if !svc.store.Write(core.KeyNotifications, []Notification{}) {
		return core.ErrStorageFailure
	}
	return nil
}

// Watch reports notification-feed changes made by another live session of
// the same store; consumers re-read the feed on each event.
func (svc *Service) Watch(ctx context.Context) (<-chan struct{}, error) {
	return svc.store.Watch(ctx, core.KeyNotifications)
}
