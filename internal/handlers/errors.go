package handlers

import (
	"BoxKeeper/internal/services"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type domainError struct {
	err     error
	status  int
	message string
}

// domainErrors gives each service error its status and the message clients
// see. Errors not listed here are unexpected and answer 500.
var domainErrors = []domainError{
	{services.ErrNoSelector, http.StatusBadRequest, "Either user_id or box_id is required"},
	{services.ErrEmptyUpdate, http.StatusBadRequest, "At least one field (box_number, port_number, or vlan_number) must be provided"},
	{services.ErrNoScreenSelector, http.StatusBadRequest, "Either box_id or screen_id is required"},
	{services.ErrEmptyScreenUpdate, http.StatusBadRequest, "At least one field (screen_number, port_number, or vlan_number) must be provided"},

	{services.ErrBoxNotFound, http.StatusNotFound, "Box not found"},
	{services.ErrUserNotFound, http.StatusNotFound, "User has no assigned box"},
	{services.ErrNoFreeBoxes, http.StatusNotFound, "No free boxes available"},
	{services.ErrBoxAlreadyAssigned, http.StatusNotFound, "Box is already assigned to another user"},
	{services.ErrNotAssigned, http.StatusNotFound, "Box is already free"},

	{services.ErrScreenNotFound, http.StatusNotFound, "Screen not found"},
	{services.ErrScreenAlreadyAssigned, http.StatusNotFound, "Screen is already assigned to another box"},
	{services.ErrBoxAlreadyHasScreen, http.StatusNotFound, "Box is already assigned to another screen"},
	{services.ErrScreenAlreadyFree, http.StatusNotFound, "Screen is already free"},
	{services.ErrBoxHasNoScreen, http.StatusNotFound, "Box has no assigned screen"},
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func lookupDomainError(err error) (domainError, bool) {
	for _, known := range domainErrors {
		if errors.Is(err, known.err) {
			return known, true
		}
	}
	return domainError{}, false
}

func respondError(c *fiber.Ctx, log *logrus.Logger, err error) error {
	if known, ok := lookupDomainError(err); ok {
		return errorResponse(c, known.status, known.message)
	}
	log.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"error":  err.Error(),
	}).Error("request failed")
	return errorResponse(c, http.StatusInternalServerError, "internal server error")
}
