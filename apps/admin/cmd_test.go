package main

import (
	"errors"
	"testing"

	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/tests"
)

func setup(t *testing.T) *commandLine {
	store := testutil.PrepareStore(t)
	return &commandLine{
		usrSvc: user.NewService(store),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
	// wantAnyErr accepts any validation failure; role errors surface as
	// validator.ValidationErrors while service-level ones are core.ValidationError
	wantAnyErr bool
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "seed", args: []string{"seed"}},
		{name: "adduser: no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser: no name", args: []string{"adduser", "-username", "jdoe"}, wantErr: errHelp},
		{name: "adduser: no password", args: []string{"adduser", "-username", "jdoe", "-name", "Jane Doe"}, wantErr: errHelp},
		{
			name: "adduser: bad role", args: []string{"adduser", "-username", "jdoe", "-name", "Jane Doe", "-role", "janitor"},
			pwd: "S3cret!word", wantAnyErr: true,
		},
		{
			name: "adduser: teacher without class", args: []string{"adduser", "-username", "jdoe", "-name", "Jane Doe"},
			pwd: "S3cret!word", wantAnyErr: true,
		},
		{
			name: "adduser: ok", args: []string{"adduser", "-username", "jdoe", "-name", "Jane Doe", "-role", "headmaster"},
			pwd: "S3cret!word",
		},
		{
			name: "adduser: duplicate username", args: []string{"adduser", "-username", "jdoe", "-name", "Jane Two", "-role", "guest"},
			pwd: "S3cret!word", wantAnyErr: true,
		},
		{name: "resetpassword: no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "resetpassword: no password", args: []string{"resetpassword", "-username", "jdoe"}, wantErr: errHelp},
		{name: "resetpassword: user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "N3w!secret", wantErr: user.ErrNotFound},
		{name: "resetpassword: ok", args: []string{"resetpassword", "-username", "jdoe"}, pwd: "N3w!secret"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantAnyErr {
				if err == nil || errors.Is(err, errHelp) {
					t.Errorf("cli.run() error = %v, want a validation error", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// the new password took effect
	if _, err := cli.usrSvc.Authenticate("jdoe", "N3w!secret"); err != nil {
		t.Errorf("Authenticate() with reset password failed: %v", err)
	}
}
