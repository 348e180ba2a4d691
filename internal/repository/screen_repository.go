package repository

import (
	"BoxKeeper/internal/models"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

var ErrScreenNotFound = errors.New("screen not found")

// ScreenRepository owns screen records. Its Transaction also hands out a box
// repository on the same database transaction, since pairing a screen reads
// and checks boxes.
type ScreenRepository interface {
	GenericRepository[models.Screen]
	Update(id uint, patch models.ScreenPatch) (*models.Screen, error)
	FindByBoxID(boxID uint) (*models.Screen, error)
	FindFree() ([]models.Screen, error)
	FindOrphaned() ([]models.Screen, error)
	SetBox(id uint, boxID *uint) (*models.Screen, error)
	Transaction(fn func(screens ScreenRepository, boxes BoxRepository) error) error
}

type ScreenRepositoryImpl[T models.Screen] struct {
	GenericRepository[models.Screen]
	db        *gorm.DB
	storeLock *StoreLock
	inTx      bool
}

func NewScreenRepository(db *gorm.DB, storeLock *StoreLock) ScreenRepository {
	return &ScreenRepositoryImpl[models.Screen]{
		GenericRepository: NewGenericRepository[models.Screen](db),
		db:                db,
		storeLock:         storeLock,
	}
}

func (r *ScreenRepositoryImpl[T]) lock() func() {
	return r.storeLock.write(r.inTx)
}

func (r *ScreenRepositoryImpl[T]) rlock() func() {
	return r.storeLock.read(r.inTx)
}

func (r *ScreenRepositoryImpl[T]) Create(screen *models.Screen) error {
	defer r.lock()()
	screen.BoxID = nil
	if err := r.GenericRepository.Create(screen); err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	return nil
}

func (r *ScreenRepositoryImpl[T]) Delete(id uint) (bool, error) {
	defer r.lock()()
	deleted, err := r.GenericRepository.Delete(id)
	if err != nil {
		return false, fmt.Errorf("delete screen %d: %w", id, err)
	}
	return deleted, nil
}

func (r *ScreenRepositoryImpl[T]) FindByID(id uint) (*models.Screen, error) {
	defer r.rlock()()
	return r.findByID(id)
}

func (r *ScreenRepositoryImpl[T]) findByID(id uint) (*models.Screen, error) {
	screen, err := r.GenericRepository.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreenNotFound
		}
		return nil, fmt.Errorf("find screen %d: %w", id, err)
	}
	return screen, nil
}

func (r *ScreenRepositoryImpl[T]) FindAll() ([]models.Screen, error) {
	defer r.rlock()()
	return r.GenericRepository.FindAll()
}

func (r *ScreenRepositoryImpl[T]) Update(id uint, patch models.ScreenPatch) (*models.Screen, error) {
	defer r.lock()()
	screen, err := r.findByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Number != nil {
		updates["number"] = nullIfEmpty(*patch.Number)
	}
	if patch.Port != nil {
		updates["port"] = *patch.Port
	}
	if patch.VlanNumber != nil {
		updates["vlan_number"] = nullIfEmpty(*patch.VlanNumber)
	}
	if len(updates) == 0 {
		return screen, nil
	}
	if err := r.db.Model(screen).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update screen %d: %w", id, err)
	}
	return r.findByID(id)
}

// FindByBoxID returns nil, nil when the box drives no screen.
func (r *ScreenRepositoryImpl[T]) FindByBoxID(boxID uint) (*models.Screen, error) {
	defer r.rlock()()
	var screens []models.Screen
	err := r.db.Where("box_id = ?", boxID).Order("id").Limit(1).Find(&screens).Error
	if err != nil {
		return nil, err
	}
	if len(screens) == 0 {
		return nil, nil
	}
	return &screens[0], nil
}

func (r *ScreenRepositoryImpl[T]) FindFree() ([]models.Screen, error) {
	defer r.rlock()()
	var screens []models.Screen
	err := r.db.Where("box_id IS NULL").Order("id").Find(&screens).Error
	return screens, err
}

// FindOrphaned returns screens still paired with a box that has been deleted.
func (r *ScreenRepositoryImpl[T]) FindOrphaned() ([]models.Screen, error) {
	defer r.rlock()()
	liveBoxes := r.db.Model(&models.Box{}).Where("deleted_at IS NULL").Select("id")
	var screens []models.Screen
	err := r.db.Where("box_id IS NOT NULL AND box_id NOT IN (?)", liveBoxes).Order("id").Find(&screens).Error
	return screens, err
}

// SetBox is the only writer of box_id. A nil boxID frees the screen.
func (r *ScreenRepositoryImpl[T]) SetBox(id uint, boxID *uint) (*models.Screen, error) {
	defer r.lock()()
	var value interface{} = gorm.Expr("NULL")
	if boxID != nil {
		value = *boxID
	}
	result := r.db.Model(&models.Screen{}).Where("id = ?", id).Update("box_id", value)
	if result.Error != nil {
		return nil, fmt.Errorf("set box on screen %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrScreenNotFound
	}
	return r.findByID(id)
}

func (r *ScreenRepositoryImpl[T]) Transaction(fn func(screens ScreenRepository, boxes BoxRepository) error) error {
	defer r.lock()()
	return r.db.Transaction(func(tx *gorm.DB) error {
		screens := &ScreenRepositoryImpl[T]{
			GenericRepository: NewGenericRepository[models.Screen](tx),
			db:                tx,
			storeLock:         r.storeLock,
			inTx:              true,
		}
		return fn(screens, boxRepositoryInTx(tx, r.storeLock))
	})
}
