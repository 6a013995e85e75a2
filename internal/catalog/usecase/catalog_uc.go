package usecase

import (
	"context"
	"fmt"

	"github.com/secondchance/catalog-service/internal/catalog/domain"
	"github.com/secondchance/catalog-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// ImageStorage stores uploaded image bytes and returns a public path.
type ImageStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// ItemCache is an optional read-through cache for single-item lookups.
type ItemCache interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	SetItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// EventPublisher broadcasts catalog mutations. Publishing is best-effort:
// failures are logged, never surfaced to the caller.
type EventPublisher interface {
	PublishItemCreated(ctx context.Context, item *domain.Item) error
	PublishItemUpdated(ctx context.Context, id int64) error
	PublishItemDeleted(ctx context.Context, id int64) error
}

// Notifier mails the configured address about new donations.
type Notifier interface {
	SendItemReceivedEmail(toEmail, itemName string) error
}

// ImageUpload carries an uploaded file through to storage.
type ImageUpload struct {
	FileName string
	Data     []byte
}

type CatalogUsecase struct {
	repo        domain.ItemRepository
	storage     ImageStorage
	cache       ItemCache
	publisher   EventPublisher
	notifier    Notifier
	notifyEmail string
	metrics     *metrics.Manager
	logger      *zap.Logger
}

func NewCatalogUsecase(
	repo domain.ItemRepository,
	storage ImageStorage,
	cache ItemCache,
	publisher EventPublisher,
	notifier Notifier,
	notifyEmail string,
	m *metrics.Manager,
	log *zap.Logger,
) *CatalogUsecase {
	return &CatalogUsecase{
		repo:        repo,
		storage:     storage,
		cache:       cache,
		publisher:   publisher,
		notifier:    notifier,
		notifyEmail: notifyEmail,
		metrics:     m,
		logger:      log,
	}
}

// Search returns the items matching the filter. An empty result is a
// success, not an error.
func (uc *CatalogUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Item, error) {
	return uc.repo.FindByFilter(ctx, filter)
}

func (uc *CatalogUsecase) List(ctx context.Context) ([]*domain.Item, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *CatalogUsecase) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetItem(ctx, id)
		if err != nil {
			uc.logger.Warn("item cache read failed", zap.Int64("id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetItem(ctx, item); err != nil {
			uc.logger.Warn("item cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	return item, nil
}

// Create validates the candidate, uploads the image when one was attached,
// and persists the item. The repository allocates the id and stamps
// dateCreated; the derived age_years is computed here so the stored document
// is complete from the first write.
func (uc *CatalogUsecase) Create(ctx context.Context, input domain.NewItem, image *ImageUpload) (*domain.Item, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidItemData)
	}

	item := &domain.Item{
		Name:        input.Name,
		Category:    input.Category,
		Condition:   input.Condition,
		AgeDays:     input.AgeDays,
		AgeYears:    domain.AgeYears(input.AgeDays),
		Description: input.Description,
	}

	if image != nil && uc.storage != nil {
		path, err := uc.storage.Upload(ctx, image.FileName, image.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store item image: %w", err)
		}
		item.Image = path
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.logger.Info("item created", zap.Int64("id", item.ID), zap.String("name", item.Name))
	if uc.metrics != nil {
		uc.metrics.ItemsCreatedTotal.Inc()
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishItemCreated(ctx, item); err != nil {
			uc.logger.Warn("failed to publish item created event", zap.Int64("id", item.ID), zap.Error(err))
		}
	}
	if uc.notifier != nil && uc.notifyEmail != "" {
		if err := uc.notifier.SendItemReceivedEmail(uc.notifyEmail, item.Name); err != nil {
			uc.logger.Warn("failed to send donation notification", zap.Int64("id", item.ID), zap.Error(err))
		}
	}

	return item, nil
}

// Update replaces the mutable field set of an existing item. The repository
// recomputes age_years and refreshes updatedAt as part of the same write.
func (uc *CatalogUsecase) Update(ctx context.Context, id int64, update domain.ItemUpdate) error {
	if err := uc.repo.Update(ctx, id, update); err != nil {
		return err
	}

	uc.logger.Info("item updated", zap.Int64("id", id))
	if uc.metrics != nil {
		uc.metrics.ItemUpdatesTotal.Inc()
	}
	uc.invalidate(ctx, id)
	if uc.publisher != nil {
		if err := uc.publisher.PublishItemUpdated(ctx, id); err != nil {
			uc.logger.Warn("failed to publish item updated event", zap.Int64("id", id), zap.Error(err))
		}
	}
	return nil
}

func (uc *CatalogUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("item deleted", zap.Int64("id", id))
	if uc.metrics != nil {
		uc.metrics.ItemDeletesTotal.Inc()
	}
	uc.invalidate(ctx, id)
	if uc.publisher != nil {
		if err := uc.publisher.PublishItemDeleted(ctx, id); err != nil {
			uc.logger.Warn("failed to publish item deleted event", zap.Int64("id", id), zap.Error(err))
		}
	}
	return nil
}

func (uc *CatalogUsecase) invalidate(ctx context.Context, id int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteItem(ctx, id); err != nil {
		uc.logger.Warn("item cache invalidation failed", zap.Int64("id", id), zap.Error(err))
	}
}
