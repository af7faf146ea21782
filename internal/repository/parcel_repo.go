package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zapshift/internal/database"
	"zapshift/internal/domain"
	"zapshift/internal/models"
)

type ParcelRepository struct {
	coll *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *ParcelRepository {
	return &ParcelRepository{coll: db.Collection(database.ParcelsCollection)}
}

func (r *ParcelRepository) Insert(ctx context.Context, p *models.Parcel) (string, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// List returns parcels newest first, optionally filtered by sender email.
func (r *ParcelRepository) List(ctx context.Context, senderEmail string) ([]models.Parcel, error) {
	filter := bson.M{}
	if senderEmail != "" {
		filter["senderEmail"] = senderEmail
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	parcels := []models.Parcel{}
	if err := cur.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// FindByID returns nil, nil when the parcel does not exist and ErrInvalidID
// when id is not a valid object id.
func (r *ParcelRepository) FindByID(ctx context.Context, id string) (*models.Parcel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var p models.Parcel
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParcelRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MarkPaid flips an unpaid parcel to paid and stamps its tracking id. The
// filter requires paymentStatus=unpaid, so a parcel already paid by another
// transaction is never re-stamped; callers observe that as a zero modified
// count.
func (r *ParcelRepository) MarkPaid(ctx context.Context, id, trackingID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "paymentStatus": domain.ParcelUnpaid},
		bson.M{"$set": bson.M{
			"paymentStatus": domain.ParcelPaid,
			"trackingId":    trackingID,
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
