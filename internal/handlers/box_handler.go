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

type BoxHandler struct {
	service services.BoxService
	log     *logrus.Logger
}

func NewBoxHandler(service services.BoxService, logService services.LogService) *BoxHandler {
	return &BoxHandler{service: service, log: logService.Log}
}

type boxRequest struct {
	BoxNumber  *string `json:"box_number"`
	PortNumber *string `json:"port_number"`
	VlanNumber *string `json:"vlan_number"`
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// emptyToNil treats "" like an omitted optional field.
func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

func (h *BoxHandler) CreateBox(c *fiber.Ctx) error {
	var req boxRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	if req.PortNumber == nil || *req.PortNumber == "" {
		return errorResponse(c, http.StatusBadRequest, "port_number is required")
	}
	if req.BoxNumber == nil || *req.BoxNumber == "" {
		return errorResponse(c, http.StatusBadRequest, "box_number is required")
	}

	box, err := h.service.CreateBox(*req.BoxNumber, *req.PortNumber, emptyToNil(req.VlanNumber))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) GetBoxByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid box ID")
	}

	box, err := h.service.GetBoxByID(id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) UpdateBox(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid box ID")
	}

	var req boxRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if (req.BoxNumber != nil && *req.BoxNumber == "") || (req.PortNumber != nil && *req.PortNumber == "") {
		return errorResponse(c, http.StatusBadRequest, "box_number and port_number cannot be empty")
	}

	box, err := h.service.UpdateBox(id, models.BoxPatch{
		Number:     req.BoxNumber,
		Port:       req.PortNumber,
		VlanNumber: req.VlanNumber,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) DeleteBox(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid box ID")
	}

	if err := h.service.DeleteBox(id); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.MessageDTO{Message: "Box deleted successfully"})
}

func (h *BoxHandler) ListBoxes(c *fiber.Ctx) error {
	boxes, err := h.service.GetBoxes()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(mapper.ToBoxGetDTOs(boxes))
}

func (h *BoxHandler) ListFreeBoxes(c *fiber.Ctx) error {
	boxes, err := h.service.GetFreeBoxes()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(mapper.ToBoxGetDTOs(boxes))
}

func (h *BoxHandler) GetBoxByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user ID")
	}

	box, err := h.service.GetBoxByUserID(userID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(mapper.ToUserBoxDTO(box))
}
