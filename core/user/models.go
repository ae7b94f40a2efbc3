package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
)

// Roles
const (
	RoleHeadmaster = "headmaster"
	RoleTeacher    = "teacher"
	RoleGuest      = "guest"
)

var AllRoles = []string{RoleHeadmaster, RoleTeacher, RoleGuest}

func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsHeadmaster() bool { return u.Role == RoleHeadmaster }
func (u *User) IsTeacher() bool    { return u.Role == RoleTeacher }

// DisplayName is the name shown in navigation headers and activity feeds.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// NewUser contains information needed to create a new User.
//
// For the teacher role, Class selects the class the account is attached to;
// the final username is forced to that class's teacher field regardless of
// the username supplied here.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,alphanum_"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=headmaster teacher guest"`
	Class    string `json:"class"`
}

func (nu *NewUser) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username)
	nu.Class = core.CleanString(nu.Class)
	return core.Validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name     string `json:"name"`
	Password string `json:"password" validate:"omitempty"`
}

func (uu *UpdateUser) Validate(origUsr User) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}
	return core.Validate.Struct(uu)
}
