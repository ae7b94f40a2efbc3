package main

import (
	stdlog "log"
	"os"

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
	"github.com/trezcool/shule/storage/kv"
)

func main() {
	std := stdlog.New(os.Stdout, "API : ", stdlog.LstdFlags|stdlog.Lmicroseconds|stdlog.Lshortfile)

	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	// set up the store
	db, err := kv.Open(core.Conf.DataDir, logger)
	if err != nil {
		std.Fatal(err)
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	usrSvc := user.NewService(db)
	if err := usrSvc.Seed(); err != nil {
		std.Fatal(err)
	}

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:            core.Conf.Address(),
		Store:              db,
		Logger:             logger,
		UserSvc:            usrSvc,
		StudentSvc:         student.NewService(db),
		TeacherSvc:         teacher.NewService(db),
		ClassSvc:           class.NewService(db),
		FeeSvc:             fee.NewService(db),
		GradeSvc:           grade.NewService(db),
		TimetableSvc:       timetable.NewService(db),
		AttendanceSvc:      attendance.NewService(db, mailSvc),
		HeadActivitySvc:    activity.NewService(db, activity.HeadmasterLimit),
		TeacherActivitySvc: activity.NewService(db, activity.TeacherLimit),
	})
	app.Start()
}
