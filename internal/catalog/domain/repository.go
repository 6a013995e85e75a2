package domain

import "context"

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	FindAll(ctx context.Context) ([]*Item, error)
	FindByID(ctx context.Context, id int64) (*Item, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Item, error)
	Update(ctx context.Context, id int64, update ItemUpdate) error
	Delete(ctx context.Context, id int64) error
}
