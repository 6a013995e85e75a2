package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/secondchance/catalog-service/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memItemRepo mimics the store-side sequence allocator: id assignment and
// insert happen under one lock, the way the Mongo counter document makes
// them atomic.
type memItemRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]*domain.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[int64]*domain.Item)}
}

func (r *memItemRepo) Create(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = r.seq
	item.DateCreated = time.Now().UTC()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *memItemRepo) FindAll(ctx context.Context) ([]*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*domain.Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it)
	}
	return items, nil
}

func (r *memItemRepo) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return it, nil
}

func (r *memItemRepo) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Item, error) {
	return r.FindAll(ctx)
}

func (r *memItemRepo) Update(ctx context.Context, id int64, update domain.ItemUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.Category = update.Category
	it.Condition = update.Condition
	it.AgeDays = update.AgeDays
	it.AgeYears = domain.AgeYears(update.AgeDays)
	it.Description = update.Description
	now := time.Now().UTC()
	it.UpdatedAt = &now
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func TestConcurrentCreates_UniqueConsecutiveIDs(t *testing.T) {
	repo := newMemItemRepo()
	uc := NewCatalogUsecase(repo, nil, nil, nil, nil, "", nil, zap.NewNop())

	const workers = 20
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := uc.Create(context.Background(), domain.NewItem{Name: "Donation"}, nil)
			require.NoError(t, err)
			ids <- item.ID
		}()
	}
	wg.Wait()
	close(ids)

	var got []int64
	for id := range ids {
		got = append(got, id)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	require.Len(t, got, workers)
	for i, id := range got {
		assert.Equal(t, int64(i+1), id, "ids must be consecutive with no duplicates")
	}
}

func TestTwoConcurrentCreates_EmptyStoreYieldsOneAndTwo(t *testing.T) {
	repo := newMemItemRepo()
	uc := NewCatalogUsecase(repo, nil, nil, nil, nil, "", nil, zap.NewNop())

	var wg sync.WaitGroup
	ids := make(chan int64, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := uc.Create(context.Background(), domain.NewItem{Name: "Donation"}, nil)
			require.NoError(t, err)
			ids <- item.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.True(t, seen[1] && seen[2], "expected ids {1,2}, got %v", seen)
}

func TestBikeScenario_UpdateRecomputesDerivedAge(t *testing.T) {
	repo := newMemItemRepo()
	uc := NewCatalogUsecase(repo, nil, nil, nil, nil, "", nil, zap.NewNop())
	ctx := context.Background()

	created, err := uc.Create(ctx, domain.NewItem{Name: "Bike", AgeDays: 400}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.1, created.AgeYears)

	err = uc.Update(ctx, created.ID, domain.ItemUpdate{
		Category:    "Sports",
		Condition:   "Used",
		AgeDays:     800,
		Description: "ok",
	})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.2, got.AgeYears)
	assert.Equal(t, "Sports", got.Category)
	assert.Equal(t, "Bike", got.Name, "name is immutable after creation")
	assert.Equal(t, created.DateCreated, got.DateCreated, "dateCreated is immutable after creation")
}

func TestGetAfterDelete_IsNotFound(t *testing.T) {
	repo := newMemItemRepo()
	uc := NewCatalogUsecase(repo, nil, nil, nil, nil, "", nil, zap.NewNop())
	ctx := context.Background()

	created, err := uc.Create(ctx, domain.NewItem{Name: "Desk"}, nil)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateNonexistent_LeavesStoreUnchanged(t *testing.T) {
	repo := newMemItemRepo()
	uc := NewCatalogUsecase(repo, nil, nil, nil, nil, "", nil, zap.NewNop())
	ctx := context.Background()

	created, err := uc.Create(ctx, domain.NewItem{Name: "Desk"}, nil)
	require.NoError(t, err)

	err = uc.Update(ctx, 9999, domain.ItemUpdate{Category: "Office"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Category, "existing items must be untouched by a rejected update")
}
