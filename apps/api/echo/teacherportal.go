package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/timetable"
	"github.com/trezcool/shule/core/user"
)

// teacherApi is the teacher surface. Every read is scoped to the logged-in
// teacher's own classes and records; writes stamp the session username so
// ownership survives teacher renames.
type teacherApi struct {
	userSvc       *user.Service
	studentSvc    *student.Service
	classSvc      *class.Service
	gradeSvc      *grade.Service
	timetableSvc  *timetable.Service
	attendanceSvc *attendance.Service
	activitySvc   *activity.Service
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := teacherApi{
		userSvc:       opts.UserSvc,
		studentSvc:    opts.StudentSvc,
		classSvc:      opts.ClassSvc,
		gradeSvc:      opts.GradeSvc,
		timetableSvc:  opts.TimetableSvc,
		attendanceSvc: opts.AttendanceSvc,
		activitySvc:   opts.TeacherActivitySvc,
	}

	tg := g.Group("/teacher", jwt, teacherMiddleware())

	tg.GET("/dashboard", api.dashboard)
	tg.GET("/classes", api.queryClasses)
	tg.GET("/classes/:name/students", api.queryClassStudents)

	tg.GET("/timetable", api.queryTimetable)
	tg.POST("/timetable", api.createTimetableEntry)
	tg.PUT("/timetable/:id", api.updateTimetableEntry)
	tg.DELETE("/timetable/:id", api.destroyTimetableEntry)

	tg.GET("/grades", api.queryGrades)
	tg.POST("/grades", api.saveGrade)

	tg.GET("/attendance", api.queryAttendance)
	tg.POST("/attendance", api.saveAttendance)
}

// Handlers

func (api *teacherApi) dashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, _ := api.classSvc.QueryAll()
	students, _ := api.studentSvc.QueryAll()
	activities, _ := api.activitySvc.QueryAll()
	if activities == nil {
		activities = []activity.Activity{}
	}

	return ctx.JSON(http.StatusOK, TeacherDashboardResponse{
		ClassInfo:  report.TeacherClassInfo(classes, students, claims.Name, claims.Username),
		Activities: activities,
	})
}

func (api *teacherApi) queryClasses(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, _ := api.classSvc.QueryAll()
	mine := report.TeacherClasses(classes, claims.Name, claims.Username)
	if mine == nil {
		mine = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, mine)
}

func (api *teacherApi) queryClassStudents(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !claims.IsHeadmaster() && !api.ownsClass(claims, ctx.Param("name")) {
		return errHttpForbidden
	}

	students, err := api.studentSvc.QueryByClass(ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "querying class students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *teacherApi) queryTimetable(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	entries, _ := api.timetableSvc.QueryAll()
	mine := report.TeacherTimetable(entries, claims.Name, claims.Username)
	if mine == nil {
		mine = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, mine)
}

func (api *teacherApi) createTimetableEntry(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if data.Teacher == "" {
		data.Teacher = claims.Name
	}
	data.CreatedBy = claims.Username
	if err := data.Validate(); err != nil {
		return err
	}

	entry, err := api.timetableSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating timetable entry")
	}

	api.record("📅", fmt.Sprintf("Added %s period for %s on %s", entry.Subject, entry.Class, entry.Day))
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *teacherApi) updateTimetableEntry(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !api.ownsEntry(claims, ctx.Param("id")) {
		return errHttpNotFound
	}

	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if data.Teacher == "" {
		data.Teacher = claims.Name
	}
	data.CreatedBy = claims.Username
	if err := data.Validate(); err != nil {
		return err
	}

	entry, err := api.timetableSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return notFoundOr(err, "updating timetable entry", timetable.ErrNotFound)
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *teacherApi) destroyTimetableEntry(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !api.ownsEntry(claims, ctx.Param("id")) {
		return errHttpNotFound
	}

	if err := api.timetableSvc.Delete(ctx.Param("id")); err != nil {
		return notFoundOr(err, "deleting timetable entry", timetable.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) queryGrades(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	grades, _ := api.gradeSvc.QueryAll()
	mine := report.TeacherGrades(grades, claims.Name, claims.Username)
	if mine == nil {
		mine = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, mine)
}

func (api *teacherApi) saveGrade(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	data.Teacher = claims.Name
	data.CreatedBy = claims.Username
	if err := data.Validate(); err != nil {
		return err
	}

	g, err := api.gradeSvc.Upsert(data)
	if err != nil {
		return errors.Wrap(err, "saving grade")
	}

	api.record("📊", fmt.Sprintf("Saved %s %s grade for %s: %d (%s)",
		g.Subject, g.ExamType, g.StudentName, g.Marks, g.Grade))
	return ctx.JSON(http.StatusOK, g)
}

func (api *teacherApi) queryAttendance(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	records, _ := api.attendanceSvc.QueryAll()
	mine := report.TeacherAttendance(records, claims.Name, claims.Username)
	if mine == nil {
		mine = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, mine)
}

func (api *teacherApi) saveAttendance(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data attendance.Sheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Sheet")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if !claims.IsHeadmaster() && !api.ownsClass(claims, data.Class) {
		return errHttpForbidden
	}

	notif, err := api.attendanceSvc.SaveSheet(data, claims.Name, claims.Username)
	if err != nil {
		return errors.Wrap(err, "saving attendance")
	}

	api.record("✅", fmt.Sprintf("Marked attendance for %s: %d/%d present",
		notif.Class, notif.PresentCount, notif.TotalCount))
	return ctx.JSON(http.StatusOK, notif)
}

func (api *teacherApi) ownsClass(claims Claims, className string) bool {
	classes, _ := api.classSvc.QueryAll()
	for _, cls := range report.TeacherClasses(classes, claims.Name, claims.Username) {
		if cls.Name == className {
			return true
		}
	}
	return false
}

func (api *teacherApi) ownsEntry(claims Claims, id string) bool {
	if claims.IsHeadmaster() {
		return true
	}
	entries, _ := api.timetableSvc.QueryAll()
	for _, e := range report.TeacherTimetable(entries, claims.Name, claims.Username) {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (api *teacherApi) record(icon, text string) {
	_, _ = api.activitySvc.Record(icon, text)
}

type TeacherDashboardResponse struct {
	ClassInfo  report.ClassInfo    `json:"classInfo"`
	Activities []activity.Activity `json:"activities"`
}
