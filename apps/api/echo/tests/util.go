package tests

import (
	"bytes"
	"encoding/json"
	stdlog "log"
	"net/http/httptest"
	"os"
	"testing"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/timetable"
	"github.com/trezcool/shule/core/user"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/tests"
)

type env struct {
	store  core.Store
	usrSvc *user.Service
	app    echoapi.Server
}

func setup(t *testing.T) *env {
	t.Helper()
	store := testutil.PrepareStore(t)

	logger := logsvc.NewRollbarLogger(stdlog.New(os.Stdout, "TEST : ", stdlog.LstdFlags), core.Conf)
	logger.Enable(false)

	usrSvc := user.NewService(store)

	app := echoapi.NewServer(&echoapi.Options{
		DisableReqLogs:     true,
		Store:              store,
		Logger:             logger,
		UserSvc:            usrSvc,
		StudentSvc:         student.NewService(store),
		TeacherSvc:         teacher.NewService(store),
		ClassSvc:           class.NewService(store),
		FeeSvc:             fee.NewService(store),
		GradeSvc:           grade.NewService(store),
		TimetableSvc:       timetable.NewService(store),
		AttendanceSvc:      attendance.NewService(store, emailsvc.NewConsoleServiceMock()),
		HeadActivitySvc:    activity.NewService(store, activity.HeadmasterLimit),
		TeacherActivitySvc: activity.NewService(store, activity.TeacherLimit),
	})
	return &env{store: store, usrSvc: usrSvc, app: app}
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

func (e *env) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := echoapi.GenerateToken(echoapi.GetUserClaims(usr))
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q failed: %v", rec.Body.String(), err)
	}
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("code = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
