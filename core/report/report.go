// Package report computes derived views over the raw collections: dashboard
// counts, fee summaries, per-class rosters and teacher-scoped record
// filters. Everything here is pure and recomputed on demand; there is no
// caching layer and nothing to invalidate.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/timetable"
)

// Stats are the headline dashboard counts.
type Stats struct {
	TotalStudents int `json:"totalStudents"`
	TotalTeachers int `json:"totalTeachers"`
	TotalClasses  int `json:"totalClasses"`
}

func DashboardStats(students []student.Student, teachers []teacher.Teacher, classes []class.Class) Stats {
	return Stats{
		TotalStudents: len(students),
		TotalTeachers: len(teachers),
		TotalClasses:  len(classes),
	}
}

// FeeSummary aggregates all fee records against the student roll.
type FeeSummary struct {
	TotalCollected int    `json:"totalCollected"`
	TotalPending   int    `json:"totalPending"`
	PaidCount      int    `json:"paidCount"`
	TotalStudents  int    `json:"totalStudents"`
	CollectionRate string `json:"collectionRate"` // one decimal; "0" with no students
}

// Fees sums paid and pending amounts. Amounts are stored as strings and
// parsed as integers; non-numeric values count as 0. The collection rate is
// paid records over total students, not over fee records: students with no
// fee record are implicitly pending.
func Fees(fees []fee.Fee, students []student.Student) FeeSummary {
	s := FeeSummary{TotalStudents: len(students), CollectionRate: "0"}
	for _, f := range fees {
		amount, err := strconv.Atoi(f.Amount)
		if err != nil {
			amount = 0
		}
		if f.Status == fee.StatusPaid {
			s.TotalCollected += amount
			s.PaidCount++
		} else {
			s.TotalPending += amount
		}
	}
	if s.TotalStudents > 0 {
		s.CollectionRate = fmt.Sprintf("%.1f", float64(s.PaidCount)/float64(s.TotalStudents)*100)
	}
	return s
}

// RosterRow joins one student of a class with their fee status and
// midterm/final grades, each shown as "marks (letter)" or "-".
type RosterRow struct {
	Student   student.Student `json:"student"`
	FeeStatus string          `json:"feeStatus"` // "Paid" | "Pending"
	Midterm   string          `json:"midterm"`
	Final     string          `json:"final"`
}

func ClassRoster(className string, students []student.Student, fees []fee.Fee, grades []grade.Grade) []RosterRow {
	var rows []RosterRow
	for _, std := range students {
		if std.Class != className {
			continue
		}

		feeStatus := "Pending"
		for _, f := range fees {
			if f.StudentID == std.ID && f.Status == fee.StatusPaid {
				feeStatus = "Paid"
				break
			}
		}

		rows = append(rows, RosterRow{
			Student:   std,
			FeeStatus: feeStatus,
			Midterm:   gradeDisplay(grades, std.ID, grade.ExamMidterm),
			Final:     gradeDisplay(grades, std.ID, grade.ExamFinal),
		})
	}
	return rows
}

func gradeDisplay(grades []grade.Grade, studentID, examType string) string {
	for _, g := range grades {
		if g.StudentID == studentID && strings.EqualFold(g.ExamType, examType) {
			return fmt.Sprintf("%d (%s)", g.Marks, g.Grade)
		}
	}
	return "-"
}

// FeeBreakdown partitions a class's students into paid (with formatted
// amount) and pending (by name).
type FeeBreakdown struct {
	Class         string   `json:"class"`
	TotalStudents int      `json:"totalStudents"`
	Paid          []string `json:"paid"`
	Pending       []string `json:"pending"`
}

func ClassFeeBreakdown(className, currency string, students []student.Student, fees []fee.Fee) FeeBreakdown {
	b := FeeBreakdown{Class: className}
	for _, std := range students {
		if std.Class != className {
			continue
		}
		b.TotalStudents++

		var paid *fee.Fee
		for i, f := range fees {
			if f.StudentID == std.ID && f.Status == fee.StatusPaid {
				paid = &fees[i]
				break
			}
		}
		if paid != nil {
			b.Paid = append(b.Paid, fmt.Sprintf("%s (%s)", std.Name, core.FormatAmount(paid.Amount, currency)))
		} else {
			b.Pending = append(b.Pending, std.Name)
		}
	}
	return b
}

// StudentDetail joins a student with their class teacher and fee status,
// substituting placeholders when the referenced class or fee is absent.
type StudentDetail struct {
	Student      student.Student `json:"student"`
	ClassTeacher string          `json:"classTeacher"`
	FeeStatus    string          `json:"feeStatus"`
}

func DetailForStudent(std student.Student, classes []class.Class, fees []fee.Fee, currency string) StudentDetail {
	d := StudentDetail{Student: std, ClassTeacher: "-", FeeStatus: "No record"}

	for _, cls := range classes {
		if cls.Name == std.Class {
			if cls.Teacher != "" {
				d.ClassTeacher = cls.Teacher
			}
			break
		}
	}

	for _, f := range fees {
		if f.StudentID != std.ID {
			continue
		}
		if f.Status == fee.StatusPaid {
			d.FeeStatus = fmt.Sprintf("Paid (%s on %s)", core.FormatAmount(f.Amount, currency), f.DatePaid)
		} else {
			d.FeeStatus = "Pending"
		}
		break
	}
	return d
}

// ClassCard is one class with its dynamically computed student count.
type ClassCard struct {
	class.Class
	StudentCount int `json:"studentCount"`
}

// FormGroup groups the classes of one form level.
type FormGroup struct {
	FormLevel string      `json:"formLevel"`
	Classes   []ClassCard `json:"classes"`
}

// ClassesByForm groups classes by form level, sorted numerically with
// "Unassigned" (no form level) last.
func ClassesByForm(classes []class.Class, students []student.Student) []FormGroup {
	grouped := make(map[string][]ClassCard)
	for _, cls := range classes {
		level := cls.FormLevel
		if level == "" {
			level = "Unassigned"
		}

		var count int
		for _, std := range students {
			if std.Class == cls.Name {
				count++
			}
		}
		grouped[level] = append(grouped[level], ClassCard{Class: cls, StudentCount: count})
	}

	levels := make([]string, 0, len(grouped))
	for level := range grouped {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i] == "Unassigned" {
			return false
		}
		if levels[j] == "Unassigned" {
			return true
		}
		a, _ := strconv.Atoi(levels[i])
		b, _ := strconv.Atoi(levels[j])
		return a < b
	})

	groups := make([]FormGroup, 0, len(levels))
	for _, level := range levels {
		groups = append(groups, FormGroup{FormLevel: level, Classes: grouped[level]})
	}
	return groups
}

// Teacher-scoped views. Records match a teacher session when teacher equals
// the session's display name OR createdBy equals the session's username;
// legacy records may carry only one of the two fields.

func TeacherTimetable(entries []timetable.Entry, name, username string) []timetable.Entry {
	var mine []timetable.Entry
	for _, e := range entries {
		if (e.Teacher != "" && (e.Teacher == name || e.Teacher == username)) || e.CreatedBy == username {
			mine = append(mine, e)
		}
	}
	return mine
}

func TeacherGrades(grades []grade.Grade, name, username string) []grade.Grade {
	var mine []grade.Grade
	for _, g := range grades {
		if g.CreatedBy == username || g.Teacher == name {
			mine = append(mine, g)
		}
	}
	return mine
}

func TeacherAttendance(records []attendance.Record, name, username string) []attendance.Record {
	var mine []attendance.Record
	for _, rec := range records {
		if rec.Teacher == name || rec.CreatedBy == username {
			mine = append(mine, rec)
		}
	}
	return mine
}

// TeacherClasses returns the classes whose teacher field matches the
// session user by name or username.
func TeacherClasses(classes []class.Class, name, username string) []class.Class {
	var mine []class.Class
	for _, cls := range classes {
		if cls.Teacher == name || cls.Teacher == username {
			mine = append(mine, cls)
		}
	}
	return mine
}

// ClassInfo is the teacher dashboard header line: assigned class names and
// the student count of the first class.
type ClassInfo struct {
	ClassNames         []string `json:"classNames"`
	FirstClassStudents int      `json:"firstClassStudents"`
}

func TeacherClassInfo(classes []class.Class, students []student.Student, name, username string) ClassInfo {
	var info ClassInfo
	mine := TeacherClasses(classes, name, username)
	for _, cls := range mine {
		info.ClassNames = append(info.ClassNames, cls.Name)
	}
	if len(mine) > 0 {
		for _, std := range students {
			if std.Class == mine[0].Name {
				info.FirstClassStudents++
			}
		}
	}
	return info
}
