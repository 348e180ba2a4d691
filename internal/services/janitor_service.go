package services

import (
	"BoxKeeper/internal/config"
	"BoxKeeper/internal/dto"
	"BoxKeeper/internal/helpers"
	"BoxKeeper/internal/mapper"
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"sync"
)

// Janitor periodically repairs boxes that share a user, releases screens
// left paired with deleted boxes and snapshots the inventory to
// storage.snapshotPath.
type Janitor struct {
	boxRepo       repository.BoxRepository
	screenRepo    repository.ScreenRepository
	configuration *config.Configuration
	logService    LogService
	auditing      bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewJanitorService(
	boxRepo repository.BoxRepository,
	screenRepo repository.ScreenRepository,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		boxRepo:       boxRepo,
		screenRepo:    screenRepo,
		logService:    logService,
		auditing:      false,
		mutex:         sync.Mutex{},
		configuration: configuration,
		cron:          cron.New(),
	}
}

func (j *Janitor) ForceStartAuditCycle() error {
	if !j.begin() {
		return errors.New("audit is in progress")
	}

	go func() {
		defer j.end()
		j.runAudit(true)
	}()

	return nil
}

func (j *Janitor) StartAuditCycle() error {
	j.logService.Log.Debug("starting audit job")
	schedule := j.configuration.Server.AuditConfig.Schedule
	_, err := j.cron.AddFunc(schedule, func() {
		if !j.begin() {
			return
		}
		defer j.end()
		j.runAudit(false)
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "audit",
			"error": err.Error(),
		}).Error("Failed to start audit job")
		return err
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) StopAuditCycle() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "audit",
		"status": "stopped",
	}).Info("Janitor audit stopped")
}

func (j *Janitor) IsAuditing() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.auditing
}

func (j *Janitor) begin() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.auditing {
		return false
	}
	j.auditing = true
	return true
}

func (j *Janitor) end() {
	j.mutex.Lock()
	j.auditing = false
	j.mutex.Unlock()
}

func (j *Janitor) runAudit(forced bool) {
	logFields := logrus.Fields{"job": "audit", "status": "start"}
	if forced {
		logFields["status"] = "forced"
	} else {
		logFields["cron"] = j.configuration.Server.AuditConfig.Schedule
	}
	j.logService.Log.WithFields(logFields).Debug("audit job started")

	repaired, err := j.RepairDuplicateUsers()
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "audit",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to repair duplicate assignments")
	}
	if repaired > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "audit",
			"status": "repaired",
			"count":  repaired,
		}).Warn("freed boxes that shared a user")
	}

	released, err := j.ReleaseOrphanedScreens()
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "audit",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to release orphaned screens")
	}
	if released > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "audit",
			"status": "released",
			"count":  released,
		}).Info("released screens of deleted boxes")
	}

	if err := j.WriteSnapshot(); err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "snapshot",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to write snapshot")
	}
}

// RepairDuplicateUsers frees every box whose user also holds a box with a
// lower id. It returns how many boxes were freed.
func (j *Janitor) RepairDuplicateUsers() (int, error) {
	repaired := 0
	err := j.boxRepo.Transaction(func(repo repository.BoxRepository) error {
		occupied, err := repo.FindOccupied()
		if err != nil {
			return err
		}
		for _, box := range duplicateHolders(occupied) {
			if _, err := repo.SetUser(box.ID, nil); err != nil {
				return err
			}
			j.logService.Log.WithFields(logrus.Fields{
				"job":  "audit",
				"box":  box.ID,
				"user": *box.UserID,
			}).Warn("box freed, user holds a lower box")
			repaired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return repaired, nil
}

// duplicateHolders expects boxes ordered by user then id.
func duplicateHolders(occupied []models.Box) []models.Box {
	var duplicates []models.Box
	for i := 1; i < len(occupied); i++ {
		if *occupied[i].UserID == *occupied[i-1].UserID {
			duplicates = append(duplicates, occupied[i])
		}
	}
	return duplicates
}

// ReleaseOrphanedScreens frees screens whose box was deleted. Box deletion
// does not cascade, so these would otherwise stay paired forever.
func (j *Janitor) ReleaseOrphanedScreens() (int, error) {
	released := 0
	err := j.screenRepo.Transaction(func(screens repository.ScreenRepository, _ repository.BoxRepository) error {
		orphaned, err := screens.FindOrphaned()
		if err != nil {
			return err
		}
		for _, screen := range orphaned {
			if _, err := screens.SetBox(screen.ID, nil); err != nil {
				return err
			}
			j.logService.Log.WithFields(logrus.Fields{
				"job":    "audit",
				"screen": screen.ID,
				"box":    *screen.BoxID,
			}).Info("screen released, box was deleted")
			released++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// WriteSnapshot is a no-op when no snapshot path is configured.
func (j *Janitor) WriteSnapshot() error {
	path := j.configuration.Storage.SnapshotPath
	if path == "" {
		return nil
	}
	var snapshot dto.SnapshotDTO
	err := j.screenRepo.Transaction(func(screens repository.ScreenRepository, boxes repository.BoxRepository) error {
		allBoxes, err := boxes.FindAll()
		if err != nil {
			return err
		}
		allScreens, err := screens.FindAll()
		if err != nil {
			return err
		}
		snapshot.Boxes = mapper.ToBoxGetDTOs(allBoxes)
		snapshot.Screens = mapper.ToScreenGetDTOs(allScreens)
		return nil
	})
	if err != nil {
		return err
	}
	if err := helpers.WriteJSONAtomic(path, snapshot); err != nil {
		return err
	}
	j.logService.Log.WithFields(logrus.Fields{
		"job":     "snapshot",
		"path":    path,
		"boxes":   len(snapshot.Boxes),
		"screens": len(snapshot.Screens),
	}).Debug("snapshot written")
	return nil
}
