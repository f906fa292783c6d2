package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"
)

// StreamCatalog is the JetStream stream holding catalog events.
const StreamCatalog = "CATALOG_EVENTS"

// Entity types
const (
	EntityCategory    = "category"
	EntitySubCategory = "subcategory"
	EntityProduct     = "product"
)

// Actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent describes a change to a merchant's catalog.
type CatalogEvent struct {
	EventType  string    `json:"eventType"`
	MerchantID string    `json:"merchantId"`
	EntityID   string    `json:"entityId"`
	EntityType string    `json:"entityType"`
	Timestamp  time.Time `json:"timestamp"`
	Cascade    *Cascade  `json:"cascade,omitempty"`
}

// Cascade lists records removed along with a deleted parent.
type Cascade struct {
	SubCategoryIDs []string `json:"subCategoryIds"`
	ProductIDs     []string `json:"productIds"`
}

// Subject returns the NATS subject for an entity action.
func Subject(entityType, action string) string {
	return fmt.Sprintf("catalog.%s.%s", entityType, action)
}

// NewCatalogEvent builds an event stamped with the current time.
func NewCatalogEvent(entityType, action, merchantID, entityID string) *CatalogEvent {
	return &CatalogEvent{
		EventType:  Subject(entityType, action),
		MerchantID: merchantID,
		EntityID:   entityID,
		EntityType: entityType,
		Timestamp:  time.Now().UTC(),
	}
}

// Publisher sends catalog events to NATS JetStream. A nil *Publisher is
// valid and drops every event.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *logrus.Entry
}

// NewPublisher connects to natsURL and ensures the catalog stream exists.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	log := logger.WithField("component", "catalog-events")

	nc, err := nats.Connect(natsURL,
		nats.Name("storefront-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectBufSize(8*1024*1024),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("Reconnected to NATS")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("Disconnected from NATS")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamCatalog,
		Subjects:  []string{"catalog.>"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to ensure catalog stream (may already exist)")
	}

	return &Publisher{nc: nc, js: js, logger: log}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}

// Publish sends event on its subject. Failures are logged.
func (p *Publisher) Publish(ctx context.Context, event *CatalogEvent) {
	if p == nil || p.js == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("Failed to encode catalog event")
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := p.js.Publish(pubCtx, event.EventType, data); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"subject":     event.EventType,
			"merchant_id": event.MerchantID,
			"entity_id":   event.EntityID,
		}).Warn("Failed to publish catalog event")
		return
	}
	p.logger.WithField("subject", event.EventType).Debug("Published catalog event")
}

// PublishChange is shorthand for building and publishing an event.
func (p *Publisher) PublishChange(ctx context.Context, entityType, action, merchantID, entityID string) {
	if p == nil {
		return
	}
	p.Publish(ctx, NewCatalogEvent(entityType, action, merchantID, entityID))
}

// PublishDeletion publishes a delete along with the records it cascaded to.
func (p *Publisher) PublishDeletion(ctx context.Context, entityType, merchantID, entityID string, subCategoryIDs, productIDs []string) {
	if p == nil {
		return
	}
	event := NewCatalogEvent(entityType, ActionDeleted, merchantID, entityID)
	if len(subCategoryIDs) > 0 || len(productIDs) > 0 {
		event.Cascade = &Cascade{SubCategoryIDs: subCategoryIDs, ProductIDs: productIDs}
	}
	p.Publish(ctx, event)
}
