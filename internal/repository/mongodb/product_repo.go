package mongorepo

import (
	"context"
	"fmt"
	"time"

	"greencart/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description []string           `bson:"description"`
	Price       float64            `bson:"price"`
	OfferPrice  float64            `bson:"offerPrice"`
	Image       []string           `bson:"image"`
	Category    string             `bson:"category"`
	InStock     bool               `bson:"inStock"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		OfferPrice:  d.OfferPrice,
		Images:      d.Image,
		Category:    d.Category,
		InStock:     d.InStock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) domain.ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	doc := productDocument{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		OfferPrice:  product.OfferPrice,
		Image:       product.Images,
		Category:    product.Category,
		InStock:     product.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = insertedHex(res)
	product.CreatedAt = now
	product.UpdatedAt = now
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "product")
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	oids, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]domain.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *productRepository) SetStock(ctx context.Context, id string, inStock bool) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"inStock":   inStock,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Errorf(domain.ErrNotFound, "product not found")
	}
	return nil
}

func (r *productRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	out := make([]domain.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
