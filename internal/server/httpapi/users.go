package httpapi

import (
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := s.users.Register(c.UserContext(), req.Email, req.Username, req.Password)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "user registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(authResponse{User: user, Token: token})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "user logged in", "user_id", user.ID)
	return c.JSON(authResponse{User: user, Token: token})
}
