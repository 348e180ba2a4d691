package services

import (
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Box{}, &models.Screen{}))
	return db
}

type assignmentFixture struct {
	repo       repository.BoxRepository
	boxes      BoxService
	assignment AssignmentService
}

func newAssignmentFixture(t *testing.T, boxCount int) *assignmentFixture {
	repo := repository.NewBoxRepository(setupTestDB(t), repository.NewStoreLock())
	f := &assignmentFixture{
		repo:       repo,
		boxes:      NewBoxService(repo, testLogService()),
		assignment: NewAssignmentService(repo, testLogService()),
	}
	for i := 0; i < boxCount; i++ {
		_, err := f.boxes.CreateBox("BOX", "8000", nil)
		require.NoError(t, err)
	}
	return f
}

func (f *assignmentFixture) userOf(t *testing.T, id uint) *int64 {
	box, err := f.repo.FindByID(id)
	require.NoError(t, err)
	return box.UserID
}

// assertOneBoxPerUser checks that no user occupies more than one live box.
func (f *assignmentFixture) assertOneBoxPerUser(t *testing.T) {
	boxes, err := f.repo.FindAll()
	require.NoError(t, err)
	seen := map[int64]uint{}
	for _, box := range boxes {
		if box.UserID == nil {
			continue
		}
		other, dup := seen[*box.UserID]
		assert.False(t, dup, "user %d holds boxes %d and %d", *box.UserID, other, box.ID)
		seen[*box.UserID] = box.ID
	}
}

func uintPtr(v uint) *uint { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestAssignmentService_ScenarioA(t *testing.T) {
	f := newAssignmentFixture(t, 2)

	box, err := f.assignment.Assign(42, uintPtr(1))
	require.NoError(t, err)
	assert.Equal(t, uint(1), box.ID)
	assert.Equal(t, int64(42), *box.UserID)

	box, err = f.assignment.Assign(42, uintPtr(2))
	require.NoError(t, err)
	assert.Equal(t, uint(2), box.ID)

	assert.Nil(t, f.userOf(t, 1))
	assert.Equal(t, int64(42), *f.userOf(t, 2))
	f.assertOneBoxPerUser(t)
}

func TestAssignmentService_PicksLowestFreeBox(t *testing.T) {
	f := newAssignmentFixture(t, 5)
	// leave {1, 3, 5} free
	_, err := f.assignment.Assign(100, uintPtr(2))
	require.NoError(t, err)
	_, err = f.assignment.Assign(101, uintPtr(4))
	require.NoError(t, err)

	box, err := f.assignment.Assign(7, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), box.ID)

	box, err = f.assignment.AssignToFreeBox(8)
	require.NoError(t, err)
	assert.Equal(t, uint(3), box.ID)
}

func TestAssignmentService_ScenarioB(t *testing.T) {
	f := newAssignmentFixture(t, 5)
	for _, id := range []uint{1, 3, 4} {
		require.NoError(t, f.boxes.DeleteBox(id))
	}

	box, err := f.assignment.Assign(7, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(2), box.ID)
}

func TestAssignmentService_ScenarioC_NoFreeBoxes(t *testing.T) {
	f := newAssignmentFixture(t, 1)
	_, err := f.assignment.Assign(1, nil)
	require.NoError(t, err)

	_, err = f.assignment.Assign(7, nil)
	assert.ErrorIs(t, err, ErrNoFreeBoxes)

	_, err = f.assignment.AssignToFreeBox(7)
	assert.ErrorIs(t, err, ErrNoFreeBoxes)
	assert.Equal(t, int64(1), *f.userOf(t, 1))
}

func TestAssignmentService_NoFreeBoxesKeepsCurrentBox(t *testing.T) {
	f := newAssignmentFixture(t, 2)
	_, err := f.assignment.Assign(1, uintPtr(1))
	require.NoError(t, err)
	_, err = f.assignment.Assign(2, uintPtr(2))
	require.NoError(t, err)

	_, err = f.assignment.AssignToFreeBox(1)
	assert.ErrorIs(t, err, ErrNoFreeBoxes)
	assert.Equal(t, int64(1), *f.userOf(t, 1))
}

func TestAssignmentService_BoxAlreadyAssigned(t *testing.T) {
	f := newAssignmentFixture(t, 2)
	_, err := f.assignment.Assign(1, uintPtr(1))
	require.NoError(t, err)
	_, err = f.assignment.Assign(2, uintPtr(2))
	require.NoError(t, err)

	_, err = f.assignment.Assign(2, uintPtr(1))
	assert.ErrorIs(t, err, ErrBoxAlreadyAssigned)

	// the failed call must not free the caller's current box
	assert.Equal(t, int64(1), *f.userOf(t, 1))
	assert.Equal(t, int64(2), *f.userOf(t, 2))
}

func TestAssignmentService_AssignSameBoxIsIdempotent(t *testing.T) {
	f := newAssignmentFixture(t, 1)
	_, err := f.assignment.Assign(5, uintPtr(1))
	require.NoError(t, err)

	box, err := f.assignment.Assign(5, uintPtr(1))
	require.NoError(t, err)
	assert.Equal(t, int64(5), *box.UserID)
}

func TestAssignmentService_AssignUnknownBox(t *testing.T) {
	f := newAssignmentFixture(t, 1)
	_, err := f.assignment.Assign(5, uintPtr(1))
	require.NoError(t, err)

	_, err = f.assignment.Assign(5, uintPtr(99))
	assert.ErrorIs(t, err, ErrBoxNotFound)
	assert.Equal(t, int64(5), *f.userOf(t, 1))
}

func TestAssignmentService_AssignPropagatesWriteFailure(t *testing.T) {
	mockRepo := new(MockBoxRepository)
	service := NewAssignmentService(mockRepo, testLogService())

	old := &models.Box{BaseModel: models.BaseModel{ID: 1}, UserID: int64Ptr(3)}
	target := &models.Box{BaseModel: models.BaseModel{ID: 2}}
	mockRepo.On("FindByID", uint(2)).Return(target, nil)
	mockRepo.On("FindByUserID", int64(3)).Return(old, nil)
	mockRepo.On("SetUser", uint(1), (*int64)(nil)).Return(&models.Box{BaseModel: models.BaseModel{ID: 1}}, nil)
	mockRepo.On("SetUser", uint(2), mock.Anything).Return(nil, errors.New("write failed"))

	_, err := service.Assign(3, uintPtr(2))

	assert.EqualError(t, err, "write failed")
	mockRepo.AssertExpectations(t)
}

func TestAssignmentService_UnassignByUser(t *testing.T) {
	f := newAssignmentFixture(t, 3)
	_, err := f.assignment.Assign(7, uintPtr(1))
	require.NoError(t, err)
	_, err = f.assignment.Assign(8, uintPtr(2))
	require.NoError(t, err)

	require.NoError(t, f.assignment.Unassign(int64Ptr(7), nil))
	assert.Nil(t, f.userOf(t, 1))

	// scenario D
	before, err := f.repo.FindAll()
	require.NoError(t, err)

	err = f.assignment.Unassign(int64Ptr(7), nil)
	assert.ErrorIs(t, err, ErrUserNotFound)

	after, err := f.repo.FindAll()
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].UserID, after[i].UserID, "box %d", before[i].ID)
	}
	assert.Nil(t, f.userOf(t, 1))
	assert.Equal(t, int64(8), *f.userOf(t, 2))
	assert.Nil(t, f.userOf(t, 3))
}

func TestAssignmentService_UnassignByBox(t *testing.T) {
	f := newAssignmentFixture(t, 1)
	_, err := f.assignment.Assign(7, nil)
	require.NoError(t, err)

	require.NoError(t, f.assignment.Unassign(nil, uintPtr(1)))
	assert.Nil(t, f.userOf(t, 1))

	err = f.assignment.Unassign(nil, uintPtr(1))
	assert.ErrorIs(t, err, ErrNotAssigned)

	err = f.assignment.Unassign(nil, uintPtr(99))
	assert.ErrorIs(t, err, ErrBoxNotFound)
}

func TestAssignmentService_UnassignPrefersUser(t *testing.T) {
	f := newAssignmentFixture(t, 2)
	_, err := f.assignment.Assign(7, uintPtr(1))
	require.NoError(t, err)
	_, err = f.assignment.Assign(8, uintPtr(2))
	require.NoError(t, err)

	require.NoError(t, f.assignment.Unassign(int64Ptr(7), uintPtr(2)))
	assert.Nil(t, f.userOf(t, 1))
	assert.Equal(t, int64(8), *f.userOf(t, 2))
}

func TestAssignmentService_UnassignRequiresSelector(t *testing.T) {
	f := newAssignmentFixture(t, 0)
	assert.ErrorIs(t, f.assignment.Unassign(nil, nil), ErrNoSelector)
}

func TestAssignmentService_DeleteDoesNotCascade(t *testing.T) {
	f := newAssignmentFixture(t, 2)
	_, err := f.assignment.Assign(7, uintPtr(1))
	require.NoError(t, err)

	require.NoError(t, f.boxes.DeleteBox(1))

	box, err := f.boxes.GetBoxByUserID(7)
	require.NoError(t, err)
	assert.Nil(t, box)

	free, err := f.boxes.GetFreeBoxes()
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, uint(2), free[0].ID)

	_, err = f.boxes.GetBoxByID(1)
	assert.ErrorIs(t, err, ErrBoxNotFound)

	box, err = f.assignment.AssignToFreeBox(7)
	require.NoError(t, err)
	assert.Equal(t, uint(2), box.ID)
}

func TestAssignmentService_ConcurrentAssignKeepsOneBoxPerUser(t *testing.T) {
	f := newAssignmentFixture(t, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := map[uint]int64{}
	for user := int64(1); user <= 15; user++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			for round := 0; round < 3; round++ {
				box, err := f.assignment.AssignToFreeBox(user)
				if err != nil {
					assert.ErrorIs(t, err, ErrNoFreeBoxes)
					continue
				}
				mu.Lock()
				winners[box.ID] = user
				mu.Unlock()
			}
		}(user)
	}
	wg.Wait()

	f.assertOneBoxPerUser(t)
	free, err := f.boxes.GetFreeBoxes()
	require.NoError(t, err)
	assert.Empty(t, free)
	assert.Len(t, winners, 10)
}
