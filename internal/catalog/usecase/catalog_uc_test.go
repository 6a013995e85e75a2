package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/secondchance/catalog-service/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Item), args.Error(1)
}
func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Item), args.Error(1)
}
func (m *MockItemRepository) Update(ctx context.Context, id int64, update domain.ItemUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}
func (m *MockItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

type MockItemCache struct{ mock.Mock }

func (m *MockItemCache) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemCache) SetItem(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockItemCache) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishItemCreated(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockPublisher) PublishItemUpdated(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPublisher) PublishItemDeleted(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newTestUsecase(repo domain.ItemRepository, storage ImageStorage, c ItemCache, pub EventPublisher) *CatalogUsecase {
	return NewCatalogUsecase(repo, storage, c, pub, nil, "", nil, zap.NewNop())
}

func TestCreate_ComputesDerivedAge(t *testing.T) {
	repo := &MockItemRepository{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Item")).Run(func(args mock.Arguments) {
		item := args.Get(1).(*domain.Item)
		item.ID = 1
		item.DateCreated = time.Now().UTC()
	}).Return(nil)

	uc := newTestUsecase(repo, nil, nil, nil)
	item, err := uc.Create(context.Background(), domain.NewItem{Name: "Bike", AgeDays: 400}, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, 1.1, item.AgeYears)
	assert.False(t, item.DateCreated.IsZero())
	repo.AssertExpectations(t)
}

func TestCreate_RequiresName(t *testing.T) {
	repo := &MockItemRepository{}
	uc := newTestUsecase(repo, nil, nil, nil)

	_, err := uc.Create(context.Background(), domain.NewItem{Category: "Toys"}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidItemData)
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_UploadsImageBeforeInsert(t *testing.T) {
	repo := &MockItemRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.Item) bool {
		return item.Image == "http://minio/item-images/images/abc.png"
	})).Return(nil)

	storage := &MockImageStorage{}
	storage.On("Upload", mock.Anything, "photo.png", []byte("bytes")).
		Return("http://minio/item-images/images/abc.png", nil)

	uc := newTestUsecase(repo, storage, nil, nil)
	_, err := uc.Create(context.Background(), domain.NewItem{Name: "Lamp"}, &ImageUpload{
		FileName: "photo.png",
		Data:     []byte("bytes"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestCreate_UploadFailureAbortsInsert(t *testing.T) {
	repo := &MockItemRepository{}
	storage := &MockImageStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("minio down"))

	uc := newTestUsecase(repo, storage, nil, nil)
	_, err := uc.Create(context.Background(), domain.NewItem{Name: "Lamp"}, &ImageUpload{FileName: "p.png"})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_PublishesEvent(t *testing.T) {
	repo := &MockItemRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub := &MockPublisher{}
	pub.On("PublishItemCreated", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUsecase(repo, nil, nil, pub)
	_, err := uc.Create(context.Background(), domain.NewItem{Name: "Chair"}, nil)

	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestGetByID_CacheHitSkipsStore(t *testing.T) {
	repo := &MockItemRepository{}
	c := &MockItemCache{}
	cached := &domain.Item{ID: 7, Name: "Sofa"}
	c.On("GetItem", mock.Anything, int64(7)).Return(cached, nil)

	uc := newTestUsecase(repo, nil, c, nil)
	item, err := uc.GetByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, cached, item)
	repo.AssertNotCalled(t, "FindByID")
}

func TestGetByID_CacheMissFallsThrough(t *testing.T) {
	repo := &MockItemRepository{}
	stored := &domain.Item{ID: 7, Name: "Sofa"}
	repo.On("FindByID", mock.Anything, int64(7)).Return(stored, nil)
	c := &MockItemCache{}
	c.On("GetItem", mock.Anything, int64(7)).Return(nil, nil)
	c.On("SetItem", mock.Anything, stored).Return(nil)

	uc := newTestUsecase(repo, nil, c, nil)
	item, err := uc.GetByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, stored, item)
	c.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &MockItemRepository{}
	repo.On("FindByID", mock.Anything, int64(9999)).Return(nil, domain.ErrItemNotFound)

	uc := newTestUsecase(repo, nil, nil, nil)
	_, err := uc.GetByID(context.Background(), 9999)

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdate_InvalidatesCacheAndPublishes(t *testing.T) {
	repo := &MockItemRepository{}
	update := domain.ItemUpdate{Category: "Sports", Condition: "Used", AgeDays: 800, Description: "ok"}
	repo.On("Update", mock.Anything, int64(3), update).Return(nil)
	c := &MockItemCache{}
	c.On("DeleteItem", mock.Anything, int64(3)).Return(nil)
	pub := &MockPublisher{}
	pub.On("PublishItemUpdated", mock.Anything, int64(3)).Return(nil)

	uc := newTestUsecase(repo, nil, c, pub)
	err := uc.Update(context.Background(), 3, update)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &MockItemRepository{}
	repo.On("Update", mock.Anything, int64(9999), mock.Anything).Return(domain.ErrItemNotFound)
	c := &MockItemCache{}

	uc := newTestUsecase(repo, nil, c, nil)
	err := uc.Update(context.Background(), 9999, domain.ItemUpdate{})

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	c.AssertNotCalled(t, "DeleteItem")
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := &MockItemRepository{}
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)
	c := &MockItemCache{}
	c.On("DeleteItem", mock.Anything, int64(5)).Return(nil)

	uc := newTestUsecase(repo, nil, c, nil)
	err := uc.Delete(context.Background(), 5)

	assert.NoError(t, err)
	c.AssertExpectations(t)
}

func TestSearch_PassesFilterThrough(t *testing.T) {
	repo := &MockItemRepository{}
	bound := 2.0
	filter := domain.Filter{Category: "Toys", MaxAgeYears: &bound}
	repo.On("FindByFilter", mock.Anything, filter).Return([]*domain.Item{}, nil)

	uc := newTestUsecase(repo, nil, nil, nil)
	items, err := uc.Search(context.Background(), filter)

	assert.NoError(t, err)
	assert.Empty(t, items)
	repo.AssertExpectations(t)
}
