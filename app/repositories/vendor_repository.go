package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/metrics"
)

// Result caps. Nearby search serves a map view; the admin list serves a
// moderation dashboard.
const (
	nearbyLimit = 200
	adminLimit  = 500
)

// VendorRepository handles vendor documents in MongoDB, including the
// 2dsphere-backed nearby search.
type VendorRepository struct {
	store *store.Store
}

func NewVendorRepository(s *store.Store) *VendorRepository {
	return &VendorRepository{store: s}
}

// Create inserts the vendor and fills in the assigned ObjectID.
func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColVendors, "insert", time.Now())

	res, err := r.store.Vendors().InsertOne(ctx, vendor)
	if err != nil {
		return fmt.Errorf("vendor insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		vendor.ID = oid
	}
	return nil
}

// FindByID fetches a vendor by ObjectID.
func (r *VendorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Vendor, bool, error) {
	if !r.store.Available() {
		return models.Vendor{}, false, store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColVendors, "find", time.Now())

	var vendor models.Vendor
	err := r.store.Vendors().FindOne(ctx, bson.M{"_id": id}).Decode(&vendor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Vendor{}, false, nil
	}
	if err != nil {
		return models.Vendor{}, false, fmt.Errorf("vendor find: %w", err)
	}
	return vendor, true, nil
}

// Update applies the patch as a single atomic $set. The bool reports
// whether a document matched the id.
func (r *VendorRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.VendorPatch) (bool, error) {
	if !r.store.Available() {
		return false, store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColVendors, "update", time.Now())

	res, err := r.store.Vendors().UpdateOne(ctx, bson.M{"_id": id}, patch.ToUpdate(time.Now().UTC()))
	if err != nil {
		return false, fmt.Errorf("vendor update: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Nearby runs the geospatial query. $near orders results by increasing
// distance natively, so no extra sort stage is needed.
func (r *VendorRepository) Nearby(ctx context.Context, q models.NearbyQuery) ([]models.Vendor, error) {
	if !r.store.Available() {
		return nil, store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColVendors, "nearby", time.Now())

	limit := int64(nearbyLimit)
	cursor, err := r.store.Vendors().Find(ctx, NearbyFilter(q), &options.FindOptions{Limit: &limit})
	if err != nil {
		return nil, fmt.Errorf("vendor nearby: %w", err)
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("vendor nearby decode: %w", err)
	}
	return vendors, nil
}

// ListAdmin returns vendors for the moderation dashboard, optionally
// narrowed by status ("pending" or "active").
func (r *VendorRepository) ListAdmin(ctx context.Context, status string) ([]models.Vendor, error) {
	if !r.store.Available() {
		return nil, store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColVendors, "list", time.Now())

	limit := int64(adminLimit)
	cursor, err := r.store.Vendors().Find(ctx, AdminFilter(status), &options.FindOptions{Limit: &limit})
	if err != nil {
		return nil, fmt.Errorf("vendor list: %w", err)
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("vendor list decode: %w", err)
	}
	return vendors, nil
}

// NearbyFilter builds the Mongo filter for a nearby search: only approved
// vendors with an active subscription, within the radius of the point,
// optionally narrowed to one service category.
func NearbyFilter(q models.NearbyQuery) bson.M {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{q.Lng, q.Lat},
				},
				"$maxDistance": q.RadiusMeters(),
			},
		},
		"approved":       true,
		"payment_status": models.PaymentActive,
	}
	if q.ServiceType != "" {
		filter["service_type"] = q.ServiceType
	}
	return filter
}

// AdminFilter maps an admin status filter onto a Mongo query:
// pending → not yet approved, active → approved with an active
// subscription, anything else → no filter.
func AdminFilter(status string) bson.M {
	switch status {
	case "pending":
		return bson.M{"approved": false}
	case "active":
		return bson.M{"approved": true, "payment_status": models.PaymentActive}
	default:
		return bson.M{}
	}
}
