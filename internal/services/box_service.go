package services

import (
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"github.com/sirupsen/logrus"
)

type BoxService interface {
	CreateBox(number, port string, vlanNumber *string) (*models.Box, error)
	GetBoxByID(id uint) (*models.Box, error)
	GetBoxByUserID(userID int64) (*models.Box, error)
	UpdateBox(id uint, patch models.BoxPatch) (*models.Box, error)
	DeleteBox(id uint) error
	GetBoxes() ([]models.Box, error)
	GetFreeBoxes() ([]models.Box, error)
}

func NewBoxService(boxRepo repository.BoxRepository, logService LogService) BoxService {
	return &boxServiceImpl{boxRepo: boxRepo, log: logService.Log}
}

type boxServiceImpl struct {
	boxRepo repository.BoxRepository
	log     *logrus.Logger
}

func (s *boxServiceImpl) CreateBox(number, port string, vlanNumber *string) (*models.Box, error) {
	box := &models.Box{Number: number, Port: port, VlanNumber: vlanNumber}
	if err := s.boxRepo.Create(box); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"box":    box.ID,
		"number": box.Number,
		"port":   box.Port,
	}).Info("box created")
	return box, nil
}

func (s *boxServiceImpl) GetBoxByID(id uint) (*models.Box, error) {
	return s.boxRepo.FindByID(id)
}

// GetBoxByUserID returns nil, nil when the user holds no box.
func (s *boxServiceImpl) GetBoxByUserID(userID int64) (*models.Box, error) {
	return s.boxRepo.FindByUserID(userID)
}

func (s *boxServiceImpl) UpdateBox(id uint, patch models.BoxPatch) (*models.Box, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	box, err := s.boxRepo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.log.WithField("box", id).Info("box updated")
	return box, nil
}

// DeleteBox does not cascade: a user occupying the box is left without one.
func (s *boxServiceImpl) DeleteBox(id uint) error {
	deleted, err := s.boxRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBoxNotFound
	}
	s.log.WithField("box", id).Info("box deleted")
	return nil
}

func (s *boxServiceImpl) GetBoxes() ([]models.Box, error) {
	boxes, err := s.boxRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return boxes, nil
}

func (s *boxServiceImpl) GetFreeBoxes() ([]models.Box, error) {
	return s.boxRepo.FindFree()
}
