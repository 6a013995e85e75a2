package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/secondchance/catalog-service/internal/catalog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	itemsCollection    = "secondChanceItems"
	countersCollection = "counters"
)

type ItemRepository struct {
	items    *mongo.Collection
	counters *mongo.Collection
	logger   *zap.Logger
}

func NewItemRepository(db *mongo.Database, log *zap.Logger) *ItemRepository {
	return &ItemRepository{
		items:    db.Collection(itemsCollection),
		counters: db.Collection(countersCollection),
		logger:   log,
	}
}

// EnsureIndexes creates the unique index on the item id. Uniqueness is the
// backstop for the sequence allocator: a racing create that somehow reuses
// an id fails on insert instead of silently duplicating.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.items.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create item id index: %w", err)
	}
	return nil
}

// nextID atomically increments and returns the item sequence. The counter
// document is upserted on first use, so an empty store starts at 1.
func (r *ItemRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": itemsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance item id sequence: %w", err)
	}
	return counter.Seq, nil
}

// Create allocates the next id, stamps dateCreated and persists the item.
// A duplicate-key insert (a counter reset behind a racing create) triggers
// one re-allocation before surfacing domain.ErrDuplicateID.
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	for attempt := 0; attempt < 2; attempt++ {
		id, err := r.nextID(ctx)
		if err != nil {
			return err
		}
		item.ID = id
		item.DateCreated = time.Now().UTC()

		_, err = r.items.InsertOne(ctx, toItemDocument(item))
		if err == nil {
			return nil
		}
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("duplicate item id on insert, re-allocating",
				zap.Int64("id", id), zap.Int("attempt", attempt+1))
			continue
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return domain.ErrDuplicateID
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	var doc itemDocument
	err := r.items.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item %d: %w", id, err)
	}
	return toDomainItem(&doc), nil
}

func (r *ItemRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Item, error) {
	return r.findMany(ctx, buildItemQuery(filter))
}

// Update replaces the mutable fields in a single $set: the derived age_years
// is recomputed from the incoming age_days so it can never go stale, and
// updatedAt is refreshed. id, name, image and dateCreated are never touched.
func (r *ItemRepository) Update(ctx context.Context, id int64, update domain.ItemUpdate) error {
	res, err := r.items.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"category":    update.Category,
			"condition":   update.Condition,
			"age_days":    update.AgeDays,
			"age_years":   domain.AgeYears(update.AgeDays),
			"description": update.Description,
			"updatedAt":   time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.items.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) findMany(ctx context.Context, query bson.M) ([]*domain.Item, error) {
	cursor, err := r.items.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	var docs []*itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return toDomainItems(docs), nil
}

// buildItemQuery translates the optional search criteria into a Mongo
// query. Absent criteria add no clause; present ones compose with AND.
func buildItemQuery(filter domain.Filter) bson.M {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Condition != "" {
		query["condition"] = filter.Condition
	}
	if filter.MaxAgeYears != nil {
		query["age_years"] = bson.M{"$lte": *filter.MaxAgeYears}
	}
	return query
}
