package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/webhook"
)

type WebhookRepository struct {
	col *mongo.Collection
}

func NewWebhookRepository(db *mongo.Database) *WebhookRepository {
	return &WebhookRepository{col: db.Collection("webhook_subscriptions")}
}

type subscriptionDocument struct {
	ID        string `bson:"_id"`
	Event     string `bson:"event"`
	TargetURL string `bson:"target_url"`
	Active    bool   `bson:"is_active"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (d subscriptionDocument) toSubscription() *webhook.Subscription {
	return &webhook.Subscription{
		ID:        d.ID,
		Event:     d.Event,
		TargetURL: d.TargetURL,
		Active:    d.Active,
		CreatedAt: millisToTime(d.CreatedAt),
		UpdatedAt: millisToTime(d.UpdatedAt),
	}
}

func (r *WebhookRepository) ByID(ctx context.Context, id string) (*webhook.Subscription, error) {
	var doc subscriptionDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, webhook.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return doc.toSubscription(), nil
}

func (r *WebhookRepository) Save(ctx context.Context, s *webhook.Subscription) error {
	doc := subscriptionDocument{
		ID:        s.ID,
		Event:     s.Event,
		TargetURL: s.TargetURL,
		Active:    s.Active,
		CreatedAt: s.CreatedAt.UnixMilli(),
		UpdatedAt: s.UpdatedAt.UnixMilli(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *WebhookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return webhook.ErrSubscriptionNotFound
	}
	return nil
}

func (r *WebhookRepository) List(ctx context.Context) ([]*webhook.Subscription, error) {
	return r.find(ctx, bson.M{})
}

func (r *WebhookRepository) ActiveForEvent(ctx context.Context, event string) ([]*webhook.Subscription, error) {
	return r.find(ctx, bson.M{"event": event, "is_active": true})
}

func (r *WebhookRepository) find(ctx context.Context, filter bson.M) ([]*webhook.Subscription, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*webhook.Subscription
	for cur.Next(ctx) {
		var doc subscriptionDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toSubscription())
	}
	return out, cur.Err()
}
