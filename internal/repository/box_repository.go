package repository

import (
	"BoxKeeper/internal/models"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

var ErrBoxNotFound = errors.New("box not found")

// BoxRepository is the single owner of box records. Every mutation holds the
// store's write lock; Transaction keeps it for a whole multi-step operation.
type BoxRepository interface {
	GenericRepository[models.Box]
	Update(id uint, patch models.BoxPatch) (*models.Box, error)
	FindByUserID(userID int64) (*models.Box, error)
	FindFree() ([]models.Box, error)
	FindOccupied() ([]models.Box, error)
	SetUser(id uint, userID *int64) (*models.Box, error)
	Transaction(fn func(repo BoxRepository) error) error
}

type BoxRepositoryImpl[T models.Box] struct {
	GenericRepository[models.Box]
	db        *gorm.DB
	storeLock *StoreLock
	// set on repositories handed to a Transaction callback
	inTx bool
}

func NewBoxRepository(db *gorm.DB, storeLock *StoreLock) BoxRepository {
	return &BoxRepositoryImpl[models.Box]{
		GenericRepository: NewGenericRepository[models.Box](db),
		db:                db,
		storeLock:         storeLock,
	}
}

func boxRepositoryInTx(tx *gorm.DB, storeLock *StoreLock) *BoxRepositoryImpl[models.Box] {
	return &BoxRepositoryImpl[models.Box]{
		GenericRepository: NewGenericRepository[models.Box](tx),
		db:                tx,
		storeLock:         storeLock,
		inTx:              true,
	}
}

func (r *BoxRepositoryImpl[T]) lock() func() {
	return r.storeLock.write(r.inTx)
}

func (r *BoxRepositoryImpl[T]) rlock() func() {
	return r.storeLock.read(r.inTx)
}

func (r *BoxRepositoryImpl[T]) Create(box *models.Box) error {
	defer r.lock()()
	box.UserID = nil
	if err := r.GenericRepository.Create(box); err != nil {
		return fmt.Errorf("create box: %w", err)
	}
	return nil
}

func (r *BoxRepositoryImpl[T]) Delete(id uint) (bool, error) {
	defer r.lock()()
	deleted, err := r.GenericRepository.Delete(id)
	if err != nil {
		return false, fmt.Errorf("delete box %d: %w", id, err)
	}
	return deleted, nil
}

func (r *BoxRepositoryImpl[T]) FindByID(id uint) (*models.Box, error) {
	defer r.rlock()()
	return r.findByID(id)
}

func (r *BoxRepositoryImpl[T]) findByID(id uint) (*models.Box, error) {
	box, err := r.GenericRepository.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("find box %d: %w", id, err)
	}
	return box, nil
}

func (r *BoxRepositoryImpl[T]) FindAll() ([]models.Box, error) {
	defer r.rlock()()
	return r.GenericRepository.FindAll()
}

func (r *BoxRepositoryImpl[T]) Update(id uint, patch models.BoxPatch) (*models.Box, error) {
	defer r.lock()()
	box, err := r.findByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Number != nil {
		updates["number"] = *patch.Number
	}
	if patch.Port != nil {
		updates["port"] = *patch.Port
	}
	if patch.VlanNumber != nil {
		updates["vlan_number"] = nullIfEmpty(*patch.VlanNumber)
	}
	if len(updates) == 0 {
		return box, nil
	}
	if err := r.db.Model(box).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update box %d: %w", id, err)
	}
	return r.findByID(id)
}

// FindByUserID returns nil, nil when the user holds no box.
func (r *BoxRepositoryImpl[T]) FindByUserID(userID int64) (*models.Box, error) {
	defer r.rlock()()
	var boxes []models.Box
	err := r.db.Where("user_id = ?", userID).Order("id").Limit(1).Find(&boxes).Error
	if err != nil {
		return nil, err
	}
	if len(boxes) == 0 {
		return nil, nil
	}
	return &boxes[0], nil
}

// FindFree returns unoccupied boxes, lowest id first.
func (r *BoxRepositoryImpl[T]) FindFree() ([]models.Box, error) {
	defer r.rlock()()
	var boxes []models.Box
	err := r.db.Where("user_id IS NULL").Order("id").Find(&boxes).Error
	return boxes, err
}

func (r *BoxRepositoryImpl[T]) FindOccupied() ([]models.Box, error) {
	defer r.rlock()()
	var boxes []models.Box
	err := r.db.Where("user_id IS NOT NULL").Order("user_id, id").Find(&boxes).Error
	return boxes, err
}

// SetUser is the only writer of user_id. A nil userID frees the box.
func (r *BoxRepositoryImpl[T]) SetUser(id uint, userID *int64) (*models.Box, error) {
	defer r.lock()()
	var value interface{} = gorm.Expr("NULL")
	if userID != nil {
		value = *userID
	}
	result := r.db.Model(&models.Box{}).Where("id = ?", id).Update("user_id", value)
	if result.Error != nil {
		return nil, fmt.Errorf("set user on box %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrBoxNotFound
	}
	return r.findByID(id)
}

// Transaction runs fn under the write lock inside one database transaction.
// Returning an error from fn rolls back every change it made.
func (r *BoxRepositoryImpl[T]) Transaction(fn func(repo BoxRepository) error) error {
	defer r.lock()()
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(boxRepositoryInTx(tx, r.storeLock))
	})
}

// nullIfEmpty turns an empty optional attribute into NULL so it can be cleared.
func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
