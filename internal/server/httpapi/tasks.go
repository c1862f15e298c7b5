package httpapi

import (
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func ownerParam(c *fiber.Ctx) string {
	// requireOwner has already matched this against the principal.
	return c.Params("owner")
}

func taskIDParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body")
	}

	task, err := s.tasks.Create(c.UserContext(), ownerParam(c), req.Title, req.Description, req.Completed)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "task created", "task_id", task.ID, "user_id", task.UserID)
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	tasks, err := s.tasks.List(c.UserContext(), ownerParam(c))
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(tasks)
}

func (s *Server) handleGetTask(c *fiber.Ctx) error {
	id, err := taskIDParam(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid task id")
	}

	task, err := s.tasks.Get(c.UserContext(), ownerParam(c), id)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(task)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	id, err := taskIDParam(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid task id")
	}

	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body")
	}

	task, err := s.tasks.Update(c.UserContext(), ownerParam(c), id, patch)
	if err != nil {
		return s.mapServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "task updated", "task_id", task.ID, "user_id", task.UserID)
	return c.JSON(task)
}

func (s *Server) handleToggleCompletion(c *fiber.Ctx) error {
	id, err := taskIDParam(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid task id")
	}

	task, err := s.tasks.ToggleCompletion(c.UserContext(), ownerParam(c), id)
	if err != nil {
		return s.mapServiceError(c, err)
	}
	return c.JSON(task)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	id, err := taskIDParam(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid task id")
	}

	if err := s.tasks.Delete(c.UserContext(), ownerParam(c), id); err != nil {
		return s.mapServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "task deleted", "task_id", id)
	return c.SendStatus(fiber.StatusNoContent)
}
