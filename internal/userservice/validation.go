package userservice

import (
	"regexp"
	"strings"

	"github.com/sushihentaime/blogapi/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateName(v *common.Validator, name, field string) {
	v.Check(strings.TrimSpace(name) != "", field, "must be provided")
	v.Check(len(name) <= 100, field, "must not be more than 100 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.CheckStringLength(password, 8, maxPasswordLength), "password", "must be between 8 and 72 characters long")
}

func validateSignup(v *common.Validator, in SignupInput) {
	validateName(v, in.FirstName, "first_name")
	validateName(v, in.LastName, "last_name")
	validateEmail(v, in.Email)
	validatePassword(v, in.Password)
}
