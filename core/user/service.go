package user

import (
	"errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/teacher"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

// defaultUser is a bootstrap account re-added (by username) whenever missing.
type defaultUser struct {
	username, password, role, name string
}

var defaultUsers = []defaultUser{
	{"headmaster", "headmaster", RoleHeadmaster, "Headmaster"},
	{"teacher", "teacher", RoleTeacher, "Teacher Guest"},
	{"JamesJulius", "Jam3s@Julius", RoleHeadmaster, "James Julius"},
}

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []User {
	var users []User
	svc.store.Read(core.KeyUsers, &users)
	return users
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.collection(), nil
}

func (svc *Service) GetByID(id string) (User, error) {
	for _, usr := range svc.collection() {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	for _, usr := range svc.collection() {
		if usr.Username == uname {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

// Create adds a new account, enforcing the unique-username constraint.
//
// For the teacher role a class must be selected: the account's username is
// forced to that class's teacher field (not the name typed by the operator)
// and a teacher record is created or relinked to match.
func (svc *Service) Create(nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}

	users := svc.collection()
	if usernameTaken(users, nu.Username) {
		return User{}, core.NewValidationError(ErrUsernameExists,
			core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	}

	username := nu.Username
	if nu.Role == RoleTeacher {
		if nu.Class == "" {
			return User{}, core.NewValidationError(
				errors.New("a class is required for teacher accounts"),
				core.FieldError{Field: "class", Error: "this field is required"},
			)
		}
		username = svc.classTeacherName(nu.Class, nu.Name)
		if usernameTaken(users, username) {
			return User{}, core.NewValidationError(ErrUsernameExists,
				core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
		}
	}

	usr := User{
		ID:       core.NextID("U", len(users), 3),
		Username: username,
		Name:     nu.Name,
		Role:     nu.Role,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	users = append(users, usr)
	if !svc.store.Write(core.KeyUsers, users) {
		return User{}, core.ErrStorageFailure
	}

	if nu.Role == RoleTeacher {
		if err := svc.linkTeacherRecord(username, nu.Name, nu.Class); err != nil {
			return User{}, err
		}
	}
	return usr, nil
}

// classTeacherName resolves the account username for a teacher credential:
// the stored class teacher, falling back to the operator-provided name when
// the class has none.
func (svc *Service) classTeacherName(className, fallback string) string {
	var classes []class.Class
	svc.store.Read(core.KeyClasses, &classes)
	for _, cls := range classes {
		if cls.Name == className {
			if cls.Teacher != "" {
				return cls.Teacher
			}
			break
		}
	}
	return fallback
}

// linkTeacherRecord ensures a teacher record exists for a teacher credential
// and is linked to the selected class. An existing record found by username
// or name has its username/class/name overwritten to match the account.
func (svc *Service) linkTeacherRecord(username, name, className string) error {
	var teachers []teacher.Teacher
	svc.store.Read(core.KeyTeachers, &teachers)

	for i, tchr := range teachers {
		if tchr.Username == username || tchr.Name == username || tchr.Name == name {
			tchr.Username = username
			tchr.Class = className
			tchr.Name = username
			teachers[i] = tchr
			if !svc.store.Write(core.KeyTeachers, teachers) {
				return core.ErrStorageFailure
			}
			return nil
		}
	}

	teachers = append(teachers, teacher.Teacher{
		ID:       core.NextID("T", len(teachers), 3),
		Name:     username,
		Status:   teacher.StatusActive,
		Username: username,
		Class:    className,
	})
	if !svc.store.Write(core.KeyTeachers, teachers) {
		return core.ErrStorageFailure
	}
	return nil
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	users := svc.collection()
	for i, usr := range users {
		if usr.ID != id {
			continue
		}
		if err := uu.Validate(usr); err != nil {
			return User{}, err
		}
		usr.Name = uu.Name
		if uu.Password != "" {
			if err := usr.SetPassword(uu.Password); err != nil {
				return User{}, err
			}
		}
		users[i] = usr
		if !svc.store.Write(core.KeyUsers, users) {
			return User{}, core.ErrStorageFailure
		}
		return usr, nil
	}
	return User{}, ErrNotFound
}

func (svc *Service) SetPassword(uname, pwd string) (User, error) {
	users := svc.collection()
	for i, usr := range users {
		if usr.Username != uname {
			continue
		}
		if err := usr.SetPassword(pwd); err != nil {
			return User{}, err
		}
		users[i] = usr
		if !svc.store.Write(core.KeyUsers, users) {
			return User{}, core.ErrStorageFailure
		}
		return usr, nil
	}
	return User{}, ErrNotFound
}

func (svc *Service) Delete(ids ...string) error {
	users := svc.collection()
	kept := users[:0]
	for _, usr := range users {
		remove := false
		for _, id := range ids {
			if usr.ID == id {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, usr)
		}
	}
	if len(kept) == len(users) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyUsers, kept) {
		return core.ErrStorageFailure
	}
	return nil
}

// Authenticate checks credentials; it returns ErrNotFound for an unknown
// username or a wrong password alike.
func (svc *Service) Authenticate(uname, pwd string) (User, error) {
	usr, err := svc.GetByUsername(core.CleanString(uname))
	if err != nil {
		return User{}, err
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

// Seed pre-populates the bootstrap accounts on first run and re-adds any
// missing one (by username) on subsequent runs. Existing accounts are never
// overwritten; seeding twice never duplicates a username.
func (svc *Service) Seed() error {
	users := svc.collection()

	changed := false
	for _, def := range defaultUsers {
		if usernameTaken(users, def.username) {
			continue
		}
		usr := User{
			ID:       core.NextID("U", len(users), 3),
			Username: def.username,
			Name:     def.name,
			Role:     def.role,
		}
		if err := usr.SetPassword(def.password); err != nil {
			return err
		}
		users = append(users, usr)
		changed = true
	}
	if changed && !svc.store.Write(core.KeyUsers, users) {
		return core.ErrStorageFailure
	}
	return nil
}

// Current returns the persisted session user, if any.
func (svc *Service) Current() (User, bool) {
	var usr User
	if !svc.store.Read(core.KeyCurrentUser, &usr) || usr.ID == "" {
		return User{}, false
	}
	return usr, true
}

func (svc *Service) SetCurrent(usr User) bool {
	return svc.store.Write(core.KeyCurrentUser, usr)
}

func (svc *Service) ClearCurrent() bool {
	return svc.store.Delete(core.KeyCurrentUser)
}

func usernameTaken(users []User, uname string) bool {
	for _, usr := range users {
		if usr.Username == uname {
			return true
		}
	}
	return false
}
