package main

import (
	"github.com/trezcool/shule/core/user"
)

// addUser creates a user account, linking a matching teacher record for
// teacher-role accounts.
func (cli *commandLine) addUser(uname, name, pwd, role, class string) error {
	data := user.NewUser{
		Name:     name,
		Username: uname,
		Password: pwd,
		Role:     role,
		Class:    class,
	}
	if err := data.Validate(); err != nil {
		return err
	}
	_, err := cli.usrSvc.Create(data)
	return err
}
