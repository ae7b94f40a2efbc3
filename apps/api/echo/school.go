package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/timetable"
	"github.com/trezcool/shule/core/user"
)

// schoolApi is the headmaster surface: full CRUD over every collection plus
// the derived dashboard views.
type schoolApi struct {
	store core.Store

	userSvc       *user.Service
	studentSvc    *student.Service
	teacherSvc    *teacher.Service
	classSvc      *class.Service
	feeSvc        *fee.Service
	gradeSvc      *grade.Service
	timetableSvc  *timetable.Service
	attendanceSvc *attendance.Service
	activitySvc   *activity.Service
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := schoolApi{
		store:         opts.Store,
		userSvc:       opts.UserSvc,
		studentSvc:    opts.StudentSvc,
		teacherSvc:    opts.TeacherSvc,
		classSvc:      opts.ClassSvc,
		feeSvc:        opts.FeeSvc,
		gradeSvc:      opts.GradeSvc,
		timetableSvc:  opts.TimetableSvc,
		attendanceSvc: opts.AttendanceSvc,
		activitySvc:   opts.HeadActivitySvc,
	}

	sg := g.Group("/school", jwt, headmasterMiddleware())

	sg.GET("/dashboard", api.dashboard)

	sg.GET("/users", api.queryUsers)
	sg.POST("/users", api.createUser)
	sg.DELETE("/users/:id", api.destroyUser)

	sg.GET("/students", api.queryStudents)
	sg.POST("/students", api.createStudent)
	sg.GET("/students/:id", api.retrieveStudent)
	sg.PUT("/students/:id", api.updateStudent)
	sg.DELETE("/students/:id", api.destroyStudent)

	sg.GET("/teachers", api.queryTeachers)
	sg.POST("/teachers", api.createTeacher)
	sg.PUT("/teachers/:id", api.updateTeacher)
	sg.DELETE("/teachers/:id", api.destroyTeacher)

	sg.GET("/classes", api.queryClasses)
	sg.POST("/classes", api.createClass)
	sg.PUT("/classes/:id", api.updateClass)
	sg.DELETE("/classes/:id", api.destroyClass)
	sg.GET("/classes/:name/roster", api.classRoster)
	sg.GET("/classes/:name/fees", api.classFees)

	sg.GET("/fees", api.queryFees)
	sg.POST("/fees/payments", api.recordPayment)

	sg.GET("/grades", api.queryGrades)
	sg.GET("/timetable", api.queryTimetable)
	sg.GET("/attendance", api.queryAttendance)

	sg.GET("/settings/currency", api.getCurrency)
	sg.PUT("/settings/currency", api.changeCurrency)

	sg.GET("/activities", api.queryActivities)
	sg.DELETE("/activities/:id", api.destroyActivity)
	sg.DELETE("/activities", api.clearActivities)

	sg.GET("/notifications", api.queryNotifications)
	sg.GET("/notifications/watch", api.watchNotifications)
	sg.DELETE("/notifications/:id", api.destroyNotification)
	sg.DELETE("/notifications", api.clearNotifications)
}

// Handlers

func (api *schoolApi) dashboard(ctx echo.Context) error {
	students, _ := api.studentSvc.QueryAll()
	teachers, _ := api.teacherSvc.QueryAll()
	classes, _ := api.classSvc.QueryAll()
	fees, _ := api.feeSvc.QueryAll()
	activities, _ := api.activitySvc.QueryAll()
	if activities == nil {
		activities = []activity.Activity{}
	}
	notifs := api.attendanceSvc.Notifications()
	if notifs == nil {
		notifs = []attendance.Notification{}
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		Stats:         report.DashboardStats(students, teachers, classes),
		Fees:          report.Fees(fees, students),
		Activities:    activities,
		Notifications: notifs,
	})
}

func (api *schoolApi) queryUsers(ctx echo.Context) error {
	users, err := api.userSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	for i := range users {
		users[i].PasswordHash = nil
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *schoolApi) createUser(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.userSvc.Create(data)
	if err != nil {
		if errors.Cause(err) == user.ErrUsernameExists {
			return core.NewValidationError(nil, core.FieldError{Field: "username", Error: err.Error()})
		}
		return errors.Wrap(err, "creating user")
	}

	api.record("👤", fmt.Sprintf("Added user account %s (%s)", usr.Username, usr.Role))
	usr.PasswordHash = nil
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *schoolApi) destroyUser(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	// Say No to Suicide! ctxUser cannot delete themselves
	if ctx.Param("id") == claims.Subject {
		return errHttpForbidden
	}
	if err := api.userSvc.Delete(ctx.Param("id")); err != nil {
		return notFoundOr(err, "deleting user", user.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryStudents(ctx echo.Context) error {
	var students []student.Student
	var err error
	if cls := ctx.QueryParam("class"); cls != "" {
		students, err = api.studentSvc.QueryByClass(cls)
	} else {
		students, err = api.studentSvc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *schoolApi) createStudent(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.studentSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	api.record("🎓", fmt.Sprintf("Enrolled %s in %s", std.Name, std.Class))
	return ctx.JSON(http.StatusCreated, std)
}

func (api *schoolApi) retrieveStudent(ctx echo.Context) error {
	std, err := api.studentSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return notFoundOr(err, "finding student by ID", student.ErrNotFound)
	}

	classes, _ := api.classSvc.QueryAll()
	fees, _ := api.feeSvc.QueryAll()
	return ctx.JSON(http.StatusOK, report.DetailForStudent(std, classes, fees, core.GetCurrency(api.store)))
}

func (api *schoolApi) updateStudent(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.studentSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return notFoundOr(err, "updating student", student.ErrNotFound)
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *schoolApi) destroyStudent(ctx echo.Context) error {
	if err := api.studentSvc.Delete(ctx.Param("id")); err != nil {
		return notFoundOr(err, "deleting student", student.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.teacherSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *schoolApi) createTeacher(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := api.teacherSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}

	api.record("🧑‍🏫", fmt.Sprintf("Added teacher %s", tch.Name))
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *schoolApi) updateTeacher(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := api.teacherSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return notFoundOr(err, "updating teacher", teacher.ErrNotFound)
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *schoolApi) destroyTeacher(ctx echo.Context) error {
	if err := api.teacherSvc.Delete(ctx.Param("id")); err != nil {
		return notFoundOr(err, "deleting teacher", teacher.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryClasses(ctx echo.Context) error {
	classes, err := api.classSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	students, _ := api.studentSvc.QueryAll()

	groups := report.ClassesByForm(classes, students)
	if groups == nil {
		groups = []report.FormGroup{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *schoolApi) createClass(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.classSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}

	api.record("🏫", fmt.Sprintf("Created class %s", cls.Name))
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *schoolApi) updateClass(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.classSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return notFoundOr(err, "updating class", class.ErrNotFound)
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *schoolApi) destroyClass(ctx echo.Context) error {
	if err := api.classSvc.Delete(ctx.Param("id")); err != nil {
		return notFoundOr(err, "deleting class", class.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) classRoster(ctx echo.Context) error {
	students, _ := api.studentSvc.QueryAll()
	fees, _ := api.feeSvc.QueryAll()
	grades, _ := api.gradeSvc.QueryAll()

	rows := report.ClassRoster(ctx.Param("name"), students, fees, grades)
	if rows == nil {
		rows = []report.RosterRow{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *schoolApi) classFees(ctx echo.Context) error {
	students, _ := api.studentSvc.QueryAll()
	fees, _ := api.feeSvc.QueryAll()

	return ctx.JSON(http.StatusOK,
		report.ClassFeeBreakdown(ctx.Param("name"), core.GetCurrency(api.store), students, fees))
}

func (api *schoolApi) queryFees(ctx echo.Context) error {
	fees, err := api.feeSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying fees")
	}
	if fees == nil {
		fees = []fee.Fee{}
	}
	students, _ := api.studentSvc.QueryAll()

	return ctx.JSON(http.StatusOK, FeesResponse{
		Fees:    fees,
		Summary: report.Fees(fees, students),
	})
}

func (api *schoolApi) recordPayment(ctx echo.Context) error {
	var data fee.Payment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Payment")
	}

	// resolve denormalized student fields when only the ID was supplied
	if data.StudentID != "" && (data.StudentName == "" || data.Class == "") {
		if std, err := api.studentSvc.GetByID(data.StudentID); err == nil {
			if data.StudentName == "" {
				data.StudentName = std.Name
			}
			if data.Class == "" {
				data.Class = std.Class
			}
		}
	}
	if err := data.Validate(); err != nil {
		return err
	}

	f, err := api.feeSvc.MarkPaid(data)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}

	api.record("💰", fmt.Sprintf("Recorded fee payment of %s from %s",
		core.FormatAmount(f.Amount, core.GetCurrency(api.store)), f.StudentName))
	return ctx.JSON(http.StatusOK, f)
}

func (api *schoolApi) queryGrades(ctx echo.Context) error {
	grades, err := api.gradeSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *schoolApi) queryTimetable(ctx echo.Context) error {
	var entries []timetable.Entry
	var err error
	if cls := ctx.QueryParam("class"); cls != "" {
		entries, err = api.timetableSvc.QueryByClass(cls)
	} else {
		entries, err = api.timetableSvc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *schoolApi) queryAttendance(ctx echo.Context) error {
	records, err := api.attendanceSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *schoolApi) getCurrency(ctx echo.Context) error {
	currency := core.GetCurrency(api.store)
	return ctx.JSON(http.StatusOK, CurrencyResponse{
		Currency: currency,
		Symbol:   core.CurrencySymbol(currency),
	})
}

func (api *schoolApi) changeCurrency(ctx echo.Context) error {
	var data CurrencyRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CurrencyRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if !core.ChangeCurrency(api.store, data.Currency) {
		return core.ErrStorageFailure
	}

	api.record("💱", fmt.Sprintf("Changed school currency to %s", data.Currency))
	return ctx.JSON(http.StatusOK, CurrencyResponse{
		Currency: data.Currency,
		Symbol:   core.CurrencySymbol(data.Currency),
	})
}

func (api *schoolApi) queryActivities(ctx echo.Context) error {
	activities, err := api.activitySvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying activities")
	}
	if activities == nil {
		activities = []activity.Activity{}
	}
	return ctx.JSON(http.StatusOK, activities)
}

func (api *schoolApi) destroyActivity(ctx echo.Context) error {
	if err := api.activitySvc.Remove(ctx.Param("id")); err != nil {
		return notFoundOr(err, "removing activity", activity.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) clearActivities(ctx echo.Context) error {
	if err := api.activitySvc.Clear(); err != nil {
		return errors.Wrap(err, "clearing activities")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryNotifications(ctx echo.Context) error {
	notifs := api.attendanceSvc.Notifications()
	if notifs == nil {
		notifs = []attendance.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

// watchNotifications long-polls for notification feed changes made by other
// processes sharing the data directory. It returns the fresh feed on change,
// or 204 when the request context expires first.
func (api *schoolApi) watchNotifications(ctx echo.Context) error {
	events, err := api.attendanceSvc.Watch(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "watching notifications")
	}

	select {
	case _, ok := <-events:
		if !ok {
			return ctx.NoContent(http.StatusNoContent)
		}
		return api.queryNotifications(ctx)
	case <-ctx.Request().Context().Done():
		return ctx.NoContent(http.StatusNoContent)
	}
}

func (api *schoolApi) destroyNotification(ctx echo.Context) error {
	if err := api.attendanceSvc.RemoveNotification(ctx.Param("id")); err != nil {
		return notFoundOr(err, "removing notification", attendance.ErrNotFound)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) clearNotifications(ctx echo.Context) error {
	if err := api.attendanceSvc.ClearNotifications(); err != nil {
		return errors.Wrap(err, "clearing notifications")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) record(icon, text string) {
	_, _ = api.activitySvc.Record(icon, text)
}

// notFoundOr maps a domain "not found" to 404 and wraps anything else.
func notFoundOr(err error, msg string, notFound error) error {
	if errors.Cause(err) == notFound {
		return errHttpNotFound
	}
	return errors.Wrap(err, msg)
}

type (
	DashboardResponse struct {
		Stats         report.Stats              `json:"stats"`
		Fees          report.FeeSummary         `json:"fees"`
		Activities    []activity.Activity       `json:"activities"`
		Notifications []attendance.Notification `json:"notifications"`
	}

	FeesResponse struct {
		Fees    []fee.Fee         `json:"fees"`
		Summary report.FeeSummary `json:"summary"`
	}

	CurrencyRequest struct {
		Currency string `json:"currency" validate:"required,oneof=USD ZWL"`
	}

	CurrencyResponse struct {
		Currency string `json:"currency"`
		Symbol   string `json:"symbol"`
	}
)

func (cr *CurrencyRequest) Validate() error {
	cr.Currency = core.CleanString(cr.Currency)
	return core.Validate.Struct(cr)
}
