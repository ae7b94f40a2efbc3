package core

import (
	"context"
	"fmt"
)

// Collection keys. Each key maps to one document holding a whole collection;
// reads and writes always move the full collection (last writer wins).
const (
	KeyUsers         = "users"
	KeyStudents      = "students"
	KeyTeachers      = "teachers"
	KeyClasses       = "classes"
	KeyFees          = "fees"
	KeyGrades        = "grades"
	KeyTimetables    = "timetables"
	KeyAttendance    = "attendance"
	KeyNotifications = "attendanceNotifications"
	KeyActivities    = "activities"

	// scalar keys
	KeyCurrentUser = "currentUser"
	KeyCurrency    = "schoolCurrency"
)

type (
	// Store is durable whole-collection get/put keyed by name.
	//
	// A failed or missing read is reported as false and must be treated by
	// callers as an empty collection, never as an error state requiring
	// recovery. A failed write leaves the stored collection unchanged.
	Store interface {
		// Read deserializes the collection stored under key into dst.
		// It returns false on a missing key or malformed data.
		Read(key string, dst interface{}) bool

		// Write serializes v and persists it under key. It returns false on
		// any storage failure without partially applying the write.
		Write(key string, v interface{}) bool

		// Delete removes key from the store.
		Delete(key string) bool

		// Watch reports external changes to key (eg. another live session
		// writing the same store) until ctx is done. Events only signal that
		// a re-read is due; they carry no data and no merge semantics.
		Watch(ctx context.Context, key string) (<-chan struct{}, error)
	}
)

// NextID returns the next sequential identifier for a collection currently
// holding n records: prefix + zero-padded n+1.
//
// Identifiers are recomputed from the collection length rather than a
// monotonic counter; deleting then re-adding can regenerate a previously
// deleted id. This matches the store's observed usage and is relied upon
// by callers.
func NextID(prefix string, n, width int) string {
	return prefix + fmt.Sprintf("%0*d", width, n+1)
}
