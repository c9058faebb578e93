// Package validation implements the application's form shapes. Each form
// exposes Validate, returning field-level error messages; an empty result
// means the form passed. Handlers re-render the originating view with the
// errors attached and the prior input preserved.
package validation

import (
	"context"
	"strings"

	"quorum/internal/repository"
)

// Errors maps a form field name to its validation message.
type Errors map[string]string

const (
	requiredMessage    = "This field is required."
	maxPasswordLength  = 128
	maxAnswerLength    = 64
	passwordsMustMatch = "Passwords must match"
	usernameTaken      = "Username already in use."
)

// RegistrationForm carries the registration input.
type RegistrationForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}

// Validate checks required fields, password confirmation, and username
// availability. The availability check queries the persistence layer
// synchronously; the schema's unique constraint backstops the race between
// this check and the insert.
func (f *RegistrationForm) Validate(ctx context.Context, users repository.UserRepository) (Errors, error) {
	errs := Errors{}

	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = requiredMessage
	}
	if f.Password == "" {
		errs["password"] = requiredMessage
	} else if len(f.Password) > maxPasswordLength {
		errs["password"] = "Password must not exceed 128 characters."
	} else if f.Password != f.Confirm {
		errs["password"] = passwordsMustMatch
	}

	if _, taken := errs["username"]; !taken {
		existing, err := users.GetByUsername(ctx, f.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs["username"] = usernameTaken
		}
	}

	return errs, nil
}

// LoginForm carries the login input.
type LoginForm struct {
	Username   string `form:"username"`
	Password   string `form:"password"`
	RememberMe bool   `form:"remember_me"`
}

// Validate checks that both credential fields are present.
func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = requiredMessage
	}
	if f.Password == "" {
		errs["password"] = requiredMessage
	}
	return errs
}

// QuestionForm carries the new-question input.
type QuestionForm struct {
	Question string `form:"question"`
}

// Validate checks that the question text is present.
func (f *QuestionForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Question) == "" {
		errs["question"] = requiredMessage
	}
	return errs
}

// AnswerForm carries the answer input.
type AnswerForm struct {
	Answer string `form:"answer"`
}

// Validate checks that the answer text is present and fits the schema's
// 64-character column, surfacing the limit as a field error instead of a
// storage failure.
func (f *AnswerForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Answer) == "" {
		errs["answer"] = requiredMessage
	} else if len(f.Answer) > maxAnswerLength {
		errs["answer"] = "Answer must not exceed 64 characters."
	}
	return errs
}
