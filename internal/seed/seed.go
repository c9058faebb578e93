// Package seed populates the database with generated demo data for local
// development.
package seed

import (
	"fmt"
	"math/rand"

	"quorum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the shared password for every seeded account.
const Password = "password123"

const maxAnswerLength = 64

// Seeder generates demo users, questions, and answers.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder writing to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes every row from the seeded tables, answers first to keep
// foreign keys satisfied.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Answer{}, &models.Question{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n accounts with generated usernames and the shared
// password.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			// The index suffix keeps generated usernames unique.
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			PasswordHash: string(hash),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user %q: %w", user.Username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedQuestions creates n questions authored by random seeded users, each
// with a few answers from other random users.
func (s *Seeder) SeedQuestions(users []models.User, n int) ([]models.Question, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author questions")
	}

	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		question := models.Question{
			Text:   gofakeit.Question(),
			UserID: users[rand.Intn(len(users))].ID,
		}
		if err := s.db.Create(&question).Error; err != nil {
			return nil, fmt.Errorf("creating question: %w", err)
		}

		for j := 0; j < rand.Intn(4); j++ {
			answer := models.Answer{
				Text:       truncate(gofakeit.Phrase(), maxAnswerLength),
				QuestionID: question.ID,
				UserID:     users[rand.Intn(len(users))].ID,
			}
			if err := s.db.Create(&answer).Error; err != nil {
				return nil, fmt.Errorf("creating answer: %w", err)
			}
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
