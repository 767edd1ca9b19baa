package mongorepo

import (
	"context"
	"fmt"
	"time"

	"greencart/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Email        string               `bson:"email"`
	Password     string               `bson:"password"`
	Phone        string               `bson:"phone"`
	ProfileImage string               `bson:"profileImage"`
	CartItems    map[string]int       `bson:"cartItems"`
	Wishlist     []primitive.ObjectID `bson:"wishlist"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func (d *userDocument) toDomain() *domain.User {
	cart := domain.CartItems(d.CartItems)
	if cart == nil {
		cart = domain.CartItems{}
	}
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Phone:        d.Phone,
		ProfileImage: d.ProfileImage,
		CartItems:    cart,
		Wishlist:     hexIDs(d.Wishlist),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepository{collection: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	doc := userDocument{
		Name:         user.Name,
		Email:        user.Email,
		Password:     user.PasswordHash,
		Phone:        user.Phone,
		ProfileImage: user.ProfileImage,
		CartItems:    map[string]int{},
		Wishlist:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Errorf(domain.ErrConflict, "User already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = insertedHex(res)
	user.CartItems = domain.CartItems{}
	user.Wishlist = []string{}
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, notFound(err, "user")
	}
	return doc.toDomain(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "user")
	}
	return doc.toDomain(), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.ProfileImage != "" {
		set["profileImage"] = update.ProfileImage
	}
	return r.updateByID(ctx, id, bson.M{"$set": set})
}

func (r *userRepository) SetCartItems(ctx context.Context, id string, items domain.CartItems) error {
	if items == nil {
		items = domain.CartItems{}
	}
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"cartItems": map[string]int(items),
		"updatedAt": time.Now().UTC(),
	}})
}

func (r *userRepository) AddToWishlist(ctx context.Context, userID, productID string) error {
	pid, err := toObjectID(productID)
	if err != nil {
		return err
	}
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"wishlist": pid}})
}

func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	pid, err := toObjectID(productID)
	if err != nil {
		return err
	}
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"wishlist": pid}})
}

func (r *userRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Errorf(domain.ErrConflict, "Name is already taken")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Errorf(domain.ErrNotFound, "user not found")
	}
	return nil
}
