package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/storage/models"
	"github.com/eagle-health/analytics-backend/internal/storage/sqlite"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

type ContactHandler struct {
	db *sqlite.Client
}

func NewContactHandler(db *sqlite.Client) *ContactHandler {
	return &ContactHandler{db: db}
}

// SubmitContact stores a contact-form submission for later review.
func (h *ContactHandler) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse contact request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "name, email, and message are required",
		})
	}
	if !strings.Contains(req.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "email is not valid",
		})
	}

	sub := &models.ContactSubmission{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}

	if err := h.db.InsertContactSubmission(sub); err != nil {
		logger.Error("Failed to store contact submission", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to submit message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      sub.ID,
	})
}
