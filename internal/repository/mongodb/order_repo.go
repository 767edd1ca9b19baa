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

type orderItemDocument struct {
	Product  primitive.ObjectID `bson:"product"`
	Quantity int                `bson:"quantity"`
}

type orderDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	UserID      primitive.ObjectID  `bson:"userId"`
	Items       []orderItemDocument `bson:"items"`
	Amount      float64             `bson:"amount"`
	Address     primitive.ObjectID  `bson:"address"`
	Status      string              `bson:"status"`
	PaymentType string              `bson:"paymentType"`
	IsPaid      bool                `bson:"isPaid"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

func (d *orderDocument) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{ProductID: it.Product.Hex(), Quantity: it.Quantity})
	}
	return domain.Order{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Items:       items,
		Amount:      d.Amount,
		AddressID:   d.Address.Hex(),
		Status:      d.Status,
		PaymentType: d.PaymentType,
		IsPaid:      d.IsPaid,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) domain.OrderRepository {
	return &orderRepository{collection: db.Collection(ordersCollection)}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	uid, err := toObjectID(order.UserID)
	if err != nil {
		return err
	}
	addr, err := toObjectID(order.AddressID)
	if err != nil {
		return err
	}
	items := make([]orderItemDocument, 0, len(order.Items))
	for _, it := range order.Items {
		pid, err := toObjectID(it.ProductID)
		if err != nil {
			return err
		}
		items = append(items, orderItemDocument{Product: pid, Quantity: it.Quantity})
	}

	now := time.Now().UTC()
	doc := orderDocument{
		UserID:      uid,
		Items:       items,
		Amount:      order.Amount,
		Address:     addr,
		Status:      order.Status,
		PaymentType: order.PaymentType,
		IsPaid:      order.IsPaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = insertedHex(res)
	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc orderDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "order")
	}
	o := doc.toDomain()
	return &o, nil
}

func (r *orderRepository) ListVisible(ctx context.Context, userID string) ([]domain.Order, error) {
	filter := bson.M{"$or": []bson.M{
		{"paymentType": domain.PaymentTypeCOD},
		{"isPaid": true},
	}}
	if userID != "" {
		uid, err := toObjectID(userID)
		if err != nil {
			return nil, err
		}
		filter["userId"] = uid
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	out := make([]domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"isPaid":    true,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Errorf(domain.ErrNotFound, "order not found")
	}
	return nil
}

// Delete only removes unpaid orders.
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "isPaid": false})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.Errorf(domain.ErrNotFound, "unpaid order not found")
	}
	return nil
}
