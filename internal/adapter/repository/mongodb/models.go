package mongodb

import (
	"time"

	"github.com/secondchance/catalog-service/internal/catalog/domain"
)

// itemDocument is the persisted shape of a catalog item. The application-level
// id lives in its own field; Mongo's _id stays driver-generated and is never
// exposed.
type itemDocument struct {
	ID          int64      `bson:"id"`
	Name        string     `bson:"name"`
	Category    string     `bson:"category"`
	Condition   string     `bson:"condition"`
	AgeDays     int        `bson:"age_days"`
	AgeYears    float64    `bson:"age_years"`
	Description string     `bson:"description"`
	Image       string     `bson:"image,omitempty"`
	DateCreated time.Time  `bson:"dateCreated"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty"`
}

func toItemDocument(it *domain.Item) *itemDocument {
	if it == nil {
		return nil
	}
	return &itemDocument{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category,
		Condition:   it.Condition,
		AgeDays:     it.AgeDays,
		AgeYears:    it.AgeYears,
		Description: it.Description,
		Image:       it.Image,
		DateCreated: it.DateCreated,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toDomainItem(d *itemDocument) *domain.Item {
	if d == nil {
		return nil
	}
	return &domain.Item{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Condition:   d.Condition,
		AgeDays:     d.AgeDays,
		AgeYears:    d.AgeYears,
		Description: d.Description,
		Image:       d.Image,
		DateCreated: d.DateCreated,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainItems(docs []*itemDocument) []*domain.Item {
	items := make([]*domain.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDomainItem(doc))
	}
	return items
}
