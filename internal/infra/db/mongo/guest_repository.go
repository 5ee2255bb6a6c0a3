package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/guest"
	"staybook/internal/domain/owner"
)

type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{col: db.Collection("guests")}
}

type guestDocument struct {
	ID         string `bson:"_id"`
	FirstName  string `bson:"first_name"`
	LastName   string `bson:"last_name"`
	Email      string `bson:"email"`
	Phone      string `bson:"phone"`
	DateJoined int64  `bson:"date_joined"`
}

func (r *GuestRepository) ByID(ctx context.Context, id string) (*guest.Guest, error) {
	var doc guestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, guest.ErrGuestNotFound
		}
		return nil, err
	}
	return &guest.Guest{
		ID:         doc.ID,
		FirstName:  doc.FirstName,
		LastName:   doc.LastName,
		Email:      doc.Email,
		Phone:      doc.Phone,
		DateJoined: millisToTime(doc.DateJoined),
	}, nil
}

func (r *GuestRepository) Save(ctx context.Context, g *guest.Guest) error {
	doc := guestDocument{
		ID:         g.ID,
		FirstName:  g.FirstName,
		LastName:   g.LastName,
		Email:      g.Email,
		Phone:      g.Phone,
		DateJoined: g.DateJoined.UnixMilli(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *GuestRepository) List(ctx context.Context) ([]*guest.Guest, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*guest.Guest
	for cur.Next(ctx) {
		var doc guestDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &guest.Guest{
			ID:         doc.ID,
			FirstName:  doc.FirstName,
			LastName:   doc.LastName,
			Email:      doc.Email,
			Phone:      doc.Phone,
			DateJoined: millisToTime(doc.DateJoined),
		})
	}
	return out, cur.Err()
}

type OwnerRepository struct {
	col *mongo.Collection
}

func NewOwnerRepository(db *mongo.Database) *OwnerRepository {
	return &OwnerRepository{col: db.Collection("owners")}
}

type ownerDocument struct {
	ID         string `bson:"_id"`
	FirstName  string `bson:"first_name"`
	LastName   string `bson:"last_name"`
	Email      string `bson:"email"`
	Phone      string `bson:"phone"`
	Address    string `bson:"address"`
	DateJoined int64  `bson:"date_joined"`
}

func (r *OwnerRepository) ByID(ctx context.Context, id string) (*owner.Owner, error) {
	var doc ownerDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, err
	}
	return &owner.Owner{
		ID:         doc.ID,
		FirstName:  doc.FirstName,
		LastName:   doc.LastName,
		Email:      doc.Email,
		Phone:      doc.Phone,
		Address:    doc.Address,
		DateJoined: millisToTime(doc.DateJoined),
	}, nil
}

func (r *OwnerRepository) Save(ctx context.Context, o *owner.Owner) error {
	doc := ownerDocument{
		ID:         o.ID,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Email:      o.Email,
		Phone:      o.Phone,
		Address:    o.Address,
		DateJoined: o.DateJoined.UnixMilli(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *OwnerRepository) List(ctx context.Context) ([]*owner.Owner, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*owner.Owner
	for cur.Next(ctx) {
		var doc ownerDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &owner.Owner{
			ID:         doc.ID,
			FirstName:  doc.FirstName,
			LastName:   doc.LastName,
			Email:      doc.Email,
			Phone:      doc.Phone,
			Address:    doc.Address,
			DateJoined: millisToTime(doc.DateJoined),
		})
	}
	return out, cur.Err()
}
