package services

import (
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"github.com/sirupsen/logrus"
)

// AssignmentService keeps the box/user relation one-to-one: a box holds at
// most one user and a user holds at most one box.
type AssignmentService interface {
	Assign(userID int64, boxID *uint) (*models.Box, error)
	AssignToFreeBox(userID int64) (*models.Box, error)
	Unassign(userID *int64, boxID *uint) error
}

func NewAssignmentService(boxRepo repository.BoxRepository, logService LogService) AssignmentService {
	return &assignmentServiceImpl{boxRepo: boxRepo, log: logService.Log}
}

type assignmentServiceImpl struct {
	boxRepo repository.BoxRepository
	log     *logrus.Logger
}

// Assign gives userID the box boxID, or the free box with the lowest id when
// boxID is nil. A box the user already held is freed in the same
// transaction, so on failure nothing changes.
func (s *assignmentServiceImpl) Assign(userID int64, boxID *uint) (*models.Box, error) {
	var assigned *models.Box
	var previous *models.Box
	err := s.boxRepo.Transaction(func(repo repository.BoxRepository) error {
		target, err := resolveTarget(repo, userID, boxID)
		if err != nil {
			return err
		}

		previous, err = repo.FindByUserID(userID)
		if err != nil {
			return err
		}
		if previous != nil && previous.ID == target.ID {
			assigned = target
			previous = nil
			return nil
		}
		if previous != nil {
			if _, err := repo.SetUser(previous.ID, nil); err != nil {
				return err
			}
		}

		assigned, err = repo.SetUser(target.ID, &userID)
		return err
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user":  userID,
			"error": err.Error(),
		}).Debug("assignment rejected")
		return nil, err
	}

	fields := logrus.Fields{"user": userID, "box": assigned.ID}
	if previous != nil {
		fields["previousBox"] = previous.ID
	}
	s.log.WithFields(fields).Info("user assigned to box")
	return assigned, nil
}

func resolveTarget(repo repository.BoxRepository, userID int64, boxID *uint) (*models.Box, error) {
	if boxID == nil {
		free, err := repo.FindFree()
		if err != nil {
			return nil, err
		}
		if len(free) == 0 {
			return nil, ErrNoFreeBoxes
		}
		return &free[0], nil
	}

	box, err := repo.FindByID(*boxID)
	if err != nil {
		return nil, err
	}
	if box.UserID != nil && *box.UserID != userID {
		return nil, ErrBoxAlreadyAssigned
	}
	return box, nil
}

func (s *assignmentServiceImpl) AssignToFreeBox(userID int64) (*models.Box, error) {
	return s.Assign(userID, nil)
}

// Unassign frees a box selected by user or by box id. The user selector wins
// when both are given.
func (s *assignmentServiceImpl) Unassign(userID *int64, boxID *uint) error {
	if userID == nil && boxID == nil {
		return ErrNoSelector
	}
	var freed *models.Box
	err := s.boxRepo.Transaction(func(repo repository.BoxRepository) error {
		var box *models.Box
		var err error
		if userID != nil {
			box, err = repo.FindByUserID(*userID)
			if err != nil {
				return err
			}
			if box == nil {
				return ErrUserNotFound
			}
		} else {
			box, err = repo.FindByID(*boxID)
			if err != nil {
				return err
			}
			if box.IsFree() {
				return ErrNotAssigned
			}
		}
		freed = box
		_, err = repo.SetUser(box.ID, nil)
		return err
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"user": *freed.UserID,
		"box":  freed.ID,
	}).Info("box unassigned")
	return nil
}
