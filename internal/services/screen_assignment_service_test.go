package services

import (
	"BoxKeeper/internal/models"
	"BoxKeeper/internal/repository"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type screenFixture struct {
	boxRepo    repository.BoxRepository
	screenRepo repository.ScreenRepository
	assignment AssignmentService
	screens    ScreenAssignmentService
}

// newScreenFixture creates boxCount boxes and screenCount screens, all free.
func newScreenFixture(t *testing.T, boxCount, screenCount int) *screenFixture {
	boxRepo, screenRepo := newTestRepositories(setupTestDB(t))
	f := &screenFixture{
		boxRepo:    boxRepo,
		screenRepo: screenRepo,
		assignment: NewAssignmentService(boxRepo, testLogService()),
		screens:    NewScreenAssignmentService(screenRepo, testLogService()),
	}
	for i := 0; i < boxCount; i++ {
		require.NoError(t, boxRepo.Create(&models.Box{Number: "BOX", Port: "8000"}))
	}
	for i := 0; i < screenCount; i++ {
		require.NoError(t, screenRepo.Create(&models.Screen{Port: "9000"}))
	}
	return f
}

func (f *screenFixture) boxOf(t *testing.T, screenID uint) *uint {
	screen, err := f.screenRepo.FindByID(screenID)
	require.NoError(t, err)
	return screen.BoxID
}

func TestScreenAssignmentService_AssignBox(t *testing.T) {
	f := newScreenFixture(t, 2, 2)

	screen, err := f.screens.AssignBox(1, 1)
	require.NoError(t, err)
	require.NotNil(t, screen.BoxID)
	assert.Equal(t, uint(1), *screen.BoxID)

	screen, err = f.screens.AssignBox(1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), *screen.BoxID)

	_, err = f.screens.AssignBox(2, 1)
	assert.ErrorIs(t, err, ErrScreenAlreadyAssigned)

	_, err = f.screens.AssignBox(1, 2)
	assert.ErrorIs(t, err, ErrBoxAlreadyHasScreen)

	_, err = f.screens.AssignBox(99, 2)
	assert.ErrorIs(t, err, ErrBoxNotFound)

	_, err = f.screens.AssignBox(2, 99)
	assert.ErrorIs(t, err, ErrScreenNotFound)

	assert.Equal(t, uint(1), *f.boxOf(t, 1))
	assert.Nil(t, f.boxOf(t, 2))
}

func TestScreenAssignmentService_AssignUserTakesScreenOver(t *testing.T) {
	f := newScreenFixture(t, 2, 2)
	_, err := f.assignment.Assign(7, uintPtr(1))
	require.NoError(t, err)
	_, err = f.assignment.Assign(8, uintPtr(2))
	require.NoError(t, err)

	// box 1 drives screen 1, box 2 drives screen 2
	_, err = f.screens.AssignBox(1, 1)
	require.NoError(t, err)
	_, err = f.screens.AssignBox(2, 2)
	require.NoError(t, err)

	screen, err := f.screens.AssignUser(7, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(1), *screen.BoxID)

	assert.Nil(t, f.boxOf(t, 1))
	assert.Equal(t, uint(1), *f.boxOf(t, 2))
}

func TestScreenAssignmentService_AssignUserWithoutBox(t *testing.T) {
	f := newScreenFixture(t, 1, 1)

	_, err := f.screens.AssignUser(7, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.screens.AssignUser(7, 99)
	assert.ErrorIs(t, err, ErrScreenNotFound)

	assert.Nil(t, f.boxOf(t, 1))
}

func TestScreenAssignmentService_UnassignByBox(t *testing.T) {
	f := newScreenFixture(t, 2, 1)
	_, err := f.screens.AssignBox(1, 1)
	require.NoError(t, err)

	require.NoError(t, f.screens.Unassign(uintPtr(1), nil))
	assert.Nil(t, f.boxOf(t, 1))

	assert.ErrorIs(t, f.screens.Unassign(uintPtr(1), nil), ErrBoxHasNoScreen)
	assert.ErrorIs(t, f.screens.Unassign(uintPtr(99), nil), ErrBoxNotFound)
}

func TestScreenAssignmentService_UnassignByScreen(t *testing.T) {
	f := newScreenFixture(t, 1, 1)
	_, err := f.screens.AssignBox(1, 1)
	require.NoError(t, err)

	require.NoError(t, f.screens.Unassign(nil, uintPtr(1)))
	assert.Nil(t, f.boxOf(t, 1))

	assert.ErrorIs(t, f.screens.Unassign(nil, uintPtr(1)), ErrScreenAlreadyFree)
	assert.ErrorIs(t, f.screens.Unassign(nil, uintPtr(99)), ErrScreenNotFound)
}

func TestScreenAssignmentService_UnassignPrefersBox(t *testing.T) {
	f := newScreenFixture(t, 2, 2)
	_, err := f.screens.AssignBox(1, 1)
	require.NoError(t, err)
	_, err = f.screens.AssignBox(2, 2)
	require.NoError(t, err)

	require.NoError(t, f.screens.Unassign(uintPtr(1), uintPtr(2)))
	assert.Nil(t, f.boxOf(t, 1))
	assert.Equal(t, uint(2), *f.boxOf(t, 2))
}

func TestScreenAssignmentService_UnassignRequiresSelector(t *testing.T) {
	f := newScreenFixture(t, 0, 0)
	assert.ErrorIs(t, f.screens.Unassign(nil, nil), ErrNoScreenSelector)
}

func TestScreenAssignmentService_GetUserScreen(t *testing.T) {
	f := newScreenFixture(t, 1, 1)

	box, screen, err := f.screens.GetUserScreen(7)
	require.NoError(t, err)
	assert.Nil(t, box)
	assert.Nil(t, screen)

	_, err = f.assignment.Assign(7, uintPtr(1))
	require.NoError(t, err)

	box, screen, err = f.screens.GetUserScreen(7)
	require.NoError(t, err)
	assert.Equal(t, uint(1), box.ID)
	assert.Nil(t, screen)

	_, err = f.screens.AssignUser(7, 1)
	require.NoError(t, err)

	box, screen, err = f.screens.GetUserScreen(7)
	require.NoError(t, err)
	assert.Equal(t, uint(1), box.ID)
	assert.Equal(t, uint(1), screen.ID)
}

func TestScreenAssignmentService_AssignBoxPropagatesWriteFailure(t *testing.T) {
	mockBoxes := new(MockBoxRepository)
	mockRepo := &MockScreenRepository{Boxes: mockBoxes}
	service := NewScreenAssignmentService(mockRepo, testLogService())

	mockRepo.On("Transaction").Return()
	mockBoxes.On("FindByID", uint(1)).Return(&models.Box{BaseModel: models.BaseModel{ID: 1}}, nil)
	mockRepo.On("FindByID", uint(2)).Return(&models.Screen{BaseModel: models.BaseModel{ID: 2}}, nil)
	mockRepo.On("FindByBoxID", uint(1)).Return(nil, nil)
	mockRepo.On("SetBox", uint(2), mock.Anything).Return(nil, errors.New("write failed"))

	_, err := service.AssignBox(1, 2)

	assert.EqualError(t, err, "write failed")
	mockRepo.AssertExpectations(t)
	mockBoxes.AssertExpectations(t)
}
