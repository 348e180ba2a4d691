package handlers

import (
	"BoxKeeper/internal/dto"
	"BoxKeeper/internal/mapper"
	"BoxKeeper/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssignmentHandler struct {
	service services.AssignmentService
	log     *logrus.Logger
}

func NewAssignmentHandler(service services.AssignmentService, logService services.LogService) *AssignmentHandler {
	return &AssignmentHandler{service: service, log: logService.Log}
}

type assignmentRequest struct {
	UserID *int64 `json:"user_id"`
	BoxID  *uint  `json:"box_id"`
}

func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req assignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == nil {
		return errorResponse(c, http.StatusBadRequest, "user_id is required")
	}

	box, err := h.service.Assign(*req.UserID, req.BoxID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *AssignmentHandler) AssignToFreeBox(c *fiber.Ctx) error {
	var req assignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == nil {
		return errorResponse(c, http.StatusBadRequest, "user_id is required")
	}

	box, err := h.service.AssignToFreeBox(*req.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *AssignmentHandler) Unassign(c *fiber.Ctx) error {
	var req assignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Unassign(req.UserID, req.BoxID); err != nil {
		return respondError(c, h.log, err)
	}

	message := "Box unassigned successfully"
	if req.UserID != nil {
		message = "User unassigned from box successfully"
	}
	return c.JSON(dto.MessageDTO{Message: message})
}
