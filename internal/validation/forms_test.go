package validation

import (
	"context"
	"strings"
	"testing"

	"quorum/internal/database"
	"quorum/internal/models"
	"quorum/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func userRepoWith(t *testing.T, usernames ...string) repository.UserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: database.NewLogger()})
	require.NoError(t, err)

	// Pin in-memory SQLite to one connection so every query sees the
	// same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	for _, name := range usernames {
		require.NoError(t, db.Create(&models.User{Username: name, PasswordHash: "x"}).Error)
	}
	return repository.NewUserRepository(db)
}

func TestRegistrationFormValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		form     RegistrationForm
		existing []string
		want     Errors
	}{
		{
			name: "valid",
			form: RegistrationForm{Username: "alice", Password: "hunter22", Confirm: "hunter22"},
			want: Errors{},
		},
		{
			name: "missing everything",
			form: RegistrationForm{},
			want: Errors{"username": "This field is required.", "password": "This field is required."},
		},
		{
			name: "passwords must match",
			form: RegistrationForm{Username: "alice", Password: "hunter22", Confirm: "hunter23"},
			want: Errors{"password": "Passwords must match"},
		},
		{
			name:     "username already in use",
			form:     RegistrationForm{Username: "alice", Password: "hunter22", Confirm: "hunter22"},
			existing: []string{"alice"},
			want:     Errors{"username": "Username already in use."},
		},
		{
			name: "password too long",
			form: RegistrationForm{
				Username: "alice",
				Password: strings.Repeat("a", 129),
				Confirm:  strings.Repeat("a", 129),
			},
			want: Errors{"password": "Password must not exceed 128 characters."},
		},
		{
			name: "whitespace username is missing",
			form: RegistrationForm{Username: "   ", Password: "hunter22", Confirm: "hunter22"},
			want: Errors{"username": "This field is required.", "password": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := userRepoWith(t, tt.existing...)
			got, err := tt.form.Validate(ctx, users)
			require.NoError(t, err)
			for field, msg := range tt.want {
				if msg == "" {
					continue
				}
				assert.Equal(t, msg, got[field], "field %q", field)
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
			}
		})
	}
}

func TestLoginFormValidate(t *testing.T) {
	assert.Empty(t, (&LoginForm{Username: "alice", Password: "pw"}).Validate())

	errs := (&LoginForm{}).Validate()
	assert.Equal(t, "This field is required.", errs["username"])
	assert.Equal(t, "This field is required.", errs["password"])

	// remember_me defaults to false
	assert.False(t, (&LoginForm{}).RememberMe)
}

func TestQuestionFormValidate(t *testing.T) {
	assert.Empty(t, (&QuestionForm{Question: "why?"}).Validate())
	assert.Equal(t, "This field is required.", (&QuestionForm{}).Validate()["question"])
	assert.Equal(t, "This field is required.", (&QuestionForm{Question: " \n "}).Validate()["question"])
}

func TestAnswerFormValidate(t *testing.T) {
	assert.Empty(t, (&AnswerForm{Answer: "42"}).Validate())
	assert.Equal(t, "This field is required.", (&AnswerForm{}).Validate()["answer"])

	long := strings.Repeat("a", 65)
	assert.Equal(t, "Answer must not exceed 64 characters.", (&AnswerForm{Answer: long}).Validate()["answer"])

	exact := strings.Repeat("a", 64)
	assert.Empty(t, (&AnswerForm{Answer: exact}).Validate())
}
