package seed

import (
	"testing"

	"quorum/internal/database"
	"quorum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: database.NewLogger()})
	require.NoError(t, err)

	// Pin in-memory SQLite to one connection so every query sees the
	// same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedUsers(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 5, count)

	// Every account uses the shared demo password.
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users[0].PasswordHash), []byte(Password)))
}

func TestSeedQuestions(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(3)
	require.NoError(t, err)

	questions, err := s.SeedQuestions(users, 10)
	require.NoError(t, err)
	assert.Len(t, questions, 10)

	var answers []models.Answer
	require.NoError(t, db.Find(&answers).Error)
	for _, a := range answers {
		assert.LessOrEqual(t, len(a.Text), 64)
		assert.NotZero(t, a.QuestionID)
	}
}

func TestSeedQuestionsWithoutUsers(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	_, err := s.SeedQuestions(nil, 3)
	assert.Error(t, err)
}

func TestClearAll(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	_, err = s.SeedQuestions(users, 4)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	for _, model := range []any{&models.User{}, &models.Question{}, &models.Answer{}} {
		var count int64
		db.Model(model).Count(&count)
		assert.EqualValues(t, 0, count, "%T should be empty", model)
	}
}
