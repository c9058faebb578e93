package server

import (
	"log/slog"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Index lists all questions, newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	questions, err := s.questions.ListNewest(c.UserContext())
	if err != nil {
		return err
	}
	return s.render(c, "index", fiber.Map{
		"Questions": questions,
	})
}

// About renders the static about page.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "about", fiber.Map{})
}

// NewQuestionPage renders the question form.
func (s *Server) NewQuestionPage(c *fiber.Ctx) error {
	return s.render(c, "newquestion", fiber.Map{
		"Form":   validation.QuestionForm{},
		"Errors": validation.Errors{},
	})
}

// CreateQuestion stores a new question owned by the session user.
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	var form validation.QuestionForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	if errs := form.Validate(); len(errs) > 0 {
		return s.render(c, "newquestion", fiber.Map{
			"Form":   form,
			"Errors": errs,
		})
	}

	userID := c.Locals("userID").(uint)
	question := &models.Question{Text: form.Question, UserID: userID}
	if err := s.questions.Create(c.UserContext(), question); err != nil {
		return err
	}

	middleware.Logger.InfoContext(c.UserContext(), "question created",
		slog.Uint64("question_id", uint64(question.ID)),
		slog.Uint64("user_id", uint64(userID)))
	return c.Redirect("/", fiber.StatusFound)
}

// ShowQuestion renders a question with its answers. The page is public;
// the answer form only appears for logged-in visitors.
func (s *Server) ShowQuestion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	question, err := s.questions.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	answers, err := s.answers.ListByQuestion(c.UserContext(), question.ID)
	if err != nil {
		return err
	}

	return s.render(c, "question", fiber.Map{
		"Question": question,
		"Answers":  answers,
		"Form":     validation.AnswerForm{},
		"Errors":   validation.Errors{},
	})
}

// CreateAnswer stores an answer to the question named in the path. The
// question must exist; a vanished question turns into a 404, not a
// dangling row.
func (s *Server) CreateAnswer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	question, err := s.questions.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	var form validation.AnswerForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	if errs := form.Validate(); len(errs) > 0 {
		answers, lerr := s.answers.ListByQuestion(c.UserContext(), question.ID)
		if lerr != nil {
			return lerr
		}
		return s.render(c, "question", fiber.Map{
			"Question": question,
			"Answers":  answers,
			"Form":     form,
			"Errors":   errs,
		})
	}

	userID := c.Locals("userID").(uint)
	answer := &models.Answer{Text: form.Answer, QuestionID: question.ID, UserID: userID}
	if err := s.answers.Create(c.UserContext(), answer); err != nil {
		return err
	}

	middleware.Logger.InfoContext(c.UserContext(), "answer created",
		slog.Uint64("answer_id", uint64(answer.ID)),
		slog.Uint64("question_id", uint64(question.ID)),
		slog.Uint64("user_id", uint64(userID)))
	return c.Redirect("/", fiber.StatusFound)
}
