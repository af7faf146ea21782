package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zapshift/internal/database"
	"zapshift/internal/domain"
	"zapshift/internal/models"
)

// ErrDuplicateTransaction reports an insert that lost to the unique index on
// transactionId. It is the signal that some other call already recorded this
// payment.
var ErrDuplicateTransaction = errors.New("payment already recorded for transaction")

type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(database.PaymentsCollection)}
}

// FindByTransactionID returns nil, nil when no payment exists for the key.
func (r *PaymentRepository) FindByTransactionID(ctx context.Context, txID string) (*models.Payment, error) {
	var p models.Payment
	err := r.coll.FindOne(ctx, bson.M{"transactionId": txID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) (string, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateTransaction
	}
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PaymentRepository) MarkPaid(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"paymentStatus": domain.PaymentPaid}},
	)
	return err
}

// ListByEmail returns a customer's payments, most recent first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"customerEmail": email},
		options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	payments := []models.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListPending returns payments stuck in pending since before the cutoff.
func (r *PaymentRepository) ListPending(ctx context.Context, olderThan time.Time) ([]models.Payment, error) {
	cur, err := r.coll.Find(ctx, bson.M{
		"paymentStatus": domain.PaymentPending,
		"paidAt":        bson.M{"$lt": olderThan},
	})
	if err != nil {
		return nil, err
	}
	payments := []models.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
