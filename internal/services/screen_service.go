package services

import (
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"github.com/sirupsen/logrus"
)

type ScreenService interface {
	CreateScreen(port string, vlanNumber, number *string) (*models.Screen, error)
	GetScreenByID(id uint) (*models.Screen, error)
	GetScreenByBoxID(boxID uint) (*models.Screen, error)
	UpdateScreen(id uint, patch models.ScreenPatch) (*models.Screen, error)
	DeleteScreen(id uint) error
	GetScreens() ([]models.Screen, error)
	GetFreeScreens() ([]models.Screen, error)
}

func NewScreenService(screenRepo repository.ScreenRepository, logService LogService) ScreenService {
	return &screenServiceImpl{screenRepo: screenRepo, log: logService.Log}
}

type screenServiceImpl struct {
	screenRepo repository.ScreenRepository
	log        *logrus.Logger
}

func (s *screenServiceImpl) CreateScreen(port string, vlanNumber, number *string) (*models.Screen, error) {
	screen := &models.Screen{Port: port, VlanNumber: vlanNumber, Number: number}
	if err := s.screenRepo.Create(screen); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"screen": screen.ID,
		"port":   screen.Port,
	}).Info("screen created")
	return screen, nil
}

func (s *screenServiceImpl) GetScreenByID(id uint) (*models.Screen, error) {
	return s.screenRepo.FindByID(id)
}

// GetScreenByBoxID returns nil, nil when the box drives no screen.
func (s *screenServiceImpl) GetScreenByBoxID(boxID uint) (*models.Screen, error) {
	return s.screenRepo.FindByBoxID(boxID)
}

func (s *screenServiceImpl) UpdateScreen(id uint, patch models.ScreenPatch) (*models.Screen, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyScreenUpdate
	}
	screen, err := s.screenRepo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.log.WithField("screen", id).Info("screen updated")
	return screen, nil
}

func (s *screenServiceImpl) DeleteScreen(id uint) error {
	deleted, err := s.screenRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrScreenNotFound
	}
	s.log.WithField("screen", id).Info("screen deleted")
	return nil
}

func (s *screenServiceImpl) GetScreens() ([]models.Screen, error) {
	return s.screenRepo.FindAll()
}

func (s *screenServiceImpl) GetFreeScreens() ([]models.Screen, error) {
	return s.screenRepo.FindFree()
}
