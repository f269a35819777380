package userservice

import (
	"strings"
	"testing"

	"github.com/sushihentaime/blogapi/internal/common"
)

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name  string
		valid bool
	}{
		{name: "", valid: false},
		{name: "   ", valid: false},
		{name: "a", valid: true},
		{name: "Ibukunola", valid: true},
		{name: strings.Repeat("a", 101), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateName(v, tc.name, "first_name")
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				// print the errors
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{email: "", valid: false},
		{email: "a", valid: false},
		{email: "a@", valid: false},
		{email: "a@b", valid: false},
		{email: "a@b.c", valid: false},
		{email: "a@b.com", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				// print the errors
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		valid    bool
	}{
		{password: "", valid: false},
		{password: "abc", valid: false},
		{password: "abcdefg", valid: false},
		{password: "abcdefgh", valid: true},
		{password: "Password!23", valid: true},
		{password: strings.Repeat("a", 72), valid: true},
		{password: strings.Repeat("a", 73), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				// print the errors
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	v := common.NewValidator()
	validateSignup(v, SignupInput{})

	want := map[string]string{
		"first_name": "must be provided",
		"last_name":  "must be provided",
		"email":      "must be provided",
		"password":   "must be provided",
	}
	for field, msg := range want {
		if v.Errors[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, v.Errors[field])
		}
	}
}
