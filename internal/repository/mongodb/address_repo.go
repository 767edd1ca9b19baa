package mongorepo

import (
	"context"
	"fmt"

	"greencart/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type addressDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
	Street    string             `bson:"street"`
	City      string             `bson:"city"`
	State     string             `bson:"state"`
	Zipcode   string             `bson:"zipcode"`
	Country   string             `bson:"country"`
	Phone     string             `bson:"phone"`
}

func (d *addressDocument) toDomain() domain.Address {
	return domain.Address{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Street:    d.Street,
		City:      d.City,
		State:     d.State,
		Zipcode:   d.Zipcode,
		Country:   d.Country,
		Phone:     d.Phone,
	}
}

// fields is the mutable part of an address, shared by insert and update.
func addressFields(a *domain.Address) bson.M {
	return bson.M{
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"email":     a.Email,
		"street":    a.Street,
		"city":      a.City,
		"state":     a.State,
		"zipcode":   a.Zipcode,
		"country":   a.Country,
		"phone":     a.Phone,
	}
}

type addressRepository struct {
	collection *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) domain.AddressRepository {
	return &addressRepository{collection: db.Collection(addressesCollection)}
}

func (r *addressRepository) Create(ctx context.Context, addr *domain.Address) error {
	uid, err := toObjectID(addr.UserID)
	if err != nil {
		return err
	}
	doc := addressFields(addr)
	doc["userId"] = uid

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	addr.ID = insertedHex(res)
	return nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	uid, err := toObjectID(userID)
	if err != nil {
		return nil, err
	}
	cursor, err := r.collection.Find(ctx, bson.M{"userId": uid})
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	var docs []addressDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}

	out := make([]domain.Address, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id, userID string) (*domain.Address, error) {
	filter, err := ownedFilter(id, userID)
	if err != nil {
		return nil, err
	}
	var doc addressDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, "address")
	}
	addr := doc.toDomain()
	return &addr, nil
}

func (r *addressRepository) Update(ctx context.Context, addr *domain.Address) error {
	filter, err := ownedFilter(addr.ID, addr.UserID)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": addressFields(addr)})
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Errorf(domain.ErrNotFound, "address not found")
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id, userID string) error {
	filter, err := ownedFilter(id, userID)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.Errorf(domain.ErrNotFound, "address not found")
	}
	return nil
}

func ownedFilter(id, userID string) (bson.M, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := toObjectID(userID)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "userId": uid}, nil
}
