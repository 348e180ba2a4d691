package services

import (
	"BoxKeeper/internal/repository"
	"errors"
)

var (
	ErrBoxNotFound        = repository.ErrBoxNotFound
	ErrUserNotFound       = errors.New("user has no assigned box")
	ErrNoFreeBoxes        = errors.New("no free boxes available")
	ErrBoxAlreadyAssigned = errors.New("box is already assigned to another user")
	ErrNotAssigned        = errors.New("box is already free")
	ErrNoSelector         = errors.New("either user_id or box_id is required")
	ErrEmptyUpdate        = errors.New("at least one field (box_number, port_number, or vlan_number) must be provided")

	ErrScreenNotFound        = repository.ErrScreenNotFound
	ErrScreenAlreadyAssigned = errors.New("screen is already assigned to another box")
	ErrBoxAlreadyHasScreen   = errors.New("box is already assigned to another screen")
	ErrScreenAlreadyFree     = errors.New("screen is already free")
	ErrBoxHasNoScreen        = errors.New("box has no assigned screen")
	ErrNoScreenSelector      = errors.New("either box_id or screen_id is required")
	ErrEmptyScreenUpdate     = errors.New("at least one field (screen_number, port_number, or vlan_number) must be provided")
)
