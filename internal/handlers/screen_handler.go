package handlers

import (
	"BoxKeeper/internal/dto"
	"BoxKeeper/internal/mapper"
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/services"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ScreenHandler struct {
	service    services.ScreenService
	assignment services.ScreenAssignmentService
	log        *logrus.Logger
}

func NewScreenHandler(
	service services.ScreenService,
	assignment services.ScreenAssignmentService,
	logService services.LogService,
) *ScreenHandler {
	return &ScreenHandler{service: service, assignment: assignment, log: logService.Log}
}

type screenRequest struct {
	ScreenNumber *string `json:"screen_number"`
	PortNumber   *string `json:"port_number"`
	VlanNumber   *string `json:"vlan_number"`
}

type screenAssignmentRequest struct {
	ScreenID *uint  `json:"screen_id"`
	BoxID    *uint  `json:"box_id"`
	UserID   *int64 `json:"user_id"`
}

func (h *ScreenHandler) CreateScreen(c *fiber.Ctx) error {
	var req screenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.PortNumber == nil || *req.PortNumber == "" {
		return errorResponse(c, http.StatusBadRequest, "port_number is required")
	}

	screen, err := h.service.CreateScreen(*req.PortNumber, emptyToNil(req.VlanNumber), emptyToNil(req.ScreenNumber))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToScreenGetDTO(screen))
}

func (h *ScreenHandler) GetScreenByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid screen ID")
	}

	screen, err := h.service.GetScreenByID(id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToScreenGetDTO(screen))
}

func (h *ScreenHandler) UpdateScreen(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid screen ID")
	}

	var req screenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.PortNumber != nil && *req.PortNumber == "" {
		return errorResponse(c, http.StatusBadRequest, "port_number cannot be empty")
	}

	screen, err := h.service.UpdateScreen(id, models.ScreenPatch{
		Number:     req.ScreenNumber,
		Port:       req.PortNumber,
		VlanNumber: req.VlanNumber,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToScreenGetDTO(screen))
}

func (h *ScreenHandler) DeleteScreen(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid screen ID")
	}

	if err := h.service.DeleteScreen(id); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.MessageDTO{Message: "Screen deleted successfully"})
}

func (h *ScreenHandler) ListScreens(c *fiber.Ctx) error {
	screens, err := h.service.GetScreens()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(mapper.ToScreenGetDTOs(screens))
}

func (h *ScreenHandler) ListFreeScreens(c *fiber.Ctx) error {
	screens, err := h.service.GetFreeScreens()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(mapper.ToScreenGetDTOs(screens))
}

func (h *ScreenHandler) AssignBox(c *fiber.Ctx) error {
	var req screenAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.BoxID == nil || req.ScreenID == nil {
		return errorResponse(c, http.StatusBadRequest, "Both box_id and screen_id are required")
	}

	screen, err := h.assignment.AssignBox(*req.BoxID, *req.ScreenID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToScreenGetDTO(screen))
}

func (h *ScreenHandler) AssignUser(c *fiber.Ctx) error {
	var req screenAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ScreenID == nil || req.UserID == nil {
		return errorResponse(c, http.StatusBadRequest, "Both screen_id and user_id are required")
	}

	screen, err := h.assignment.AssignUser(*req.UserID, *req.ScreenID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToScreenGetDTO(screen))
}

func (h *ScreenHandler) Unassign(c *fiber.Ctx) error {
	var req screenAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.assignment.Unassign(req.BoxID, req.ScreenID); err != nil {
		return respondError(c, h.log, err)
	}

	message := "Screen unassigned successfully"
	if req.BoxID != nil {
		message = "Box unassigned from screen successfully"
	}
	return c.JSON(dto.MessageDTO{Message: message})
}

func (h *ScreenHandler) GetScreenByBox(c *fiber.Ctx) error {
	boxID, err := parseUintParam(c, "box_id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid box ID")
	}

	screen, err := h.service.GetScreenByBoxID(boxID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToBoxScreenDTO(screen))
}

func (h *ScreenHandler) GetUserScreen(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user ID")
	}

	box, screen, err := h.assignment.GetUserScreen(userID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToUserScreenDTO(box, screen))
}
