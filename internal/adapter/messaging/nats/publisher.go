package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/secondchance/catalog-service/internal/catalog/domain"
)

const (
	SubjectItemCreated = "catalog.item.created"
	SubjectItemUpdated = "catalog.item.updated"
	SubjectItemDeleted = "catalog.item.deleted"
)

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishItemCreated(ctx context.Context, item *domain.Item) error {
	return p.publish(SubjectItemCreated, item)
}

func (p *Publisher) PublishItemUpdated(ctx context.Context, id int64) error {
	return p.publish(SubjectItemUpdated, map[string]int64{"id": id})
}

func (p *Publisher) PublishItemDeleted(ctx context.Context, id int64) error {
	return p.publish(SubjectItemDeleted, map[string]int64{"id": id})
}

func (p *Publisher) publish(subject string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, jsonData)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
