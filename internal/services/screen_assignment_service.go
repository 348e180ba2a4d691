package services

import (
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"github.com/sirupsen/logrus"
)

// ScreenAssignmentService pairs boxes with screens one-to-one.
type ScreenAssignmentService interface {
	AssignBox(boxID, screenID uint) (*models.Screen, error)
	AssignUser(userID int64, screenID uint) (*models.Screen, error)
	Unassign(boxID, screenID *uint) error
	GetUserScreen(userID int64) (*models.Box, *models.Screen, error)
}

func NewScreenAssignmentService(screenRepo repository.ScreenRepository, logService LogService) ScreenAssignmentService {
	return &screenAssignmentServiceImpl{screenRepo: screenRepo, log: logService.Log}
}

type screenAssignmentServiceImpl struct {
	screenRepo repository.ScreenRepository
	log        *logrus.Logger
}

// AssignBox pairs boxID with a free screen. It refuses to break an existing
// pairing on either side; pairing a box with the screen it already drives is
// a no-op.
func (s *screenAssignmentServiceImpl) AssignBox(boxID, screenID uint) (*models.Screen, error) {
	var assigned *models.Screen
	err := s.screenRepo.Transaction(func(screens repository.ScreenRepository, boxes repository.BoxRepository) error {
		if _, err := boxes.FindByID(boxID); err != nil {
			return err
		}
		screen, err := screens.FindByID(screenID)
		if err != nil {
			return err
		}
		if screen.BoxID != nil && *screen.BoxID == boxID {
			assigned = screen
			return nil
		}
		if screen.BoxID != nil {
			return ErrScreenAlreadyAssigned
		}
		current, err := screens.FindByBoxID(boxID)
		if err != nil {
			return err
		}
		if current != nil {
			return ErrBoxAlreadyHasScreen
		}
		assigned, err = screens.SetBox(screenID, &boxID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"box": boxID, "screen": screenID}).Info("box assigned to screen")
	return assigned, nil
}

// AssignUser pairs the user's box with screenID, taking the screen from any
// other box and releasing the screen the box drove before.
func (s *screenAssignmentServiceImpl) AssignUser(userID int64, screenID uint) (*models.Screen, error) {
	var assigned *models.Screen
	var boxID uint
	err := s.screenRepo.Transaction(func(screens repository.ScreenRepository, boxes repository.BoxRepository) error {
		screen, err := screens.FindByID(screenID)
		if err != nil {
			return err
		}
		box, err := boxes.FindByUserID(userID)
		if err != nil {
			return err
		}
		if box == nil {
			return ErrUserNotFound
		}
		boxID = box.ID

		if screen.BoxID != nil && *screen.BoxID == boxID {
			assigned = screen
			return nil
		}
		if screen.BoxID != nil {
			if _, err := screens.SetBox(screenID, nil); err != nil {
				return err
			}
		}
		current, err := screens.FindByBoxID(boxID)
		if err != nil {
			return err
		}
		if current != nil {
			if _, err := screens.SetBox(current.ID, nil); err != nil {
				return err
			}
		}
		assigned, err = screens.SetBox(screenID, &boxID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user":   userID,
		"box":    boxID,
		"screen": screenID,
	}).Info("user's box assigned to screen")
	return assigned, nil
}

// Unassign releases a screen selected by box or by screen id. The box
// selector wins when both are given.
func (s *screenAssignmentServiceImpl) Unassign(boxID, screenID *uint) error {
	if boxID == nil && screenID == nil {
		return ErrNoScreenSelector
	}
	var freed *models.Screen
	err := s.screenRepo.Transaction(func(screens repository.ScreenRepository, boxes repository.BoxRepository) error {
		var screen *models.Screen
		var err error
		if boxID != nil {
			if _, err := boxes.FindByID(*boxID); err != nil {
				return err
			}
			screen, err = screens.FindByBoxID(*boxID)
			if err != nil {
				return err
			}
			if screen == nil {
				return ErrBoxHasNoScreen
			}
		} else {
			screen, err = screens.FindByID(*screenID)
			if err != nil {
				return err
			}
			if screen.IsFree() {
				return ErrScreenAlreadyFree
			}
		}
		freed = screen
		_, err = screens.SetBox(screen.ID, nil)
		return err
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"box":    *freed.BoxID,
		"screen": freed.ID,
	}).Info("screen unassigned")
	return nil
}

// GetUserScreen returns the user's box and the screen it drives; either may be nil.
func (s *screenAssignmentServiceImpl) GetUserScreen(userID int64) (*models.Box, *models.Screen, error) {
	var box *models.Box
	var screen *models.Screen
	err := s.screenRepo.Transaction(func(screens repository.ScreenRepository, boxes repository.BoxRepository) error {
		var err error
		box, err = boxes.FindByUserID(userID)
		if err != nil || box == nil {
			return err
		}
		screen, err = screens.FindByBoxID(box.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return box, screen, nil
}
