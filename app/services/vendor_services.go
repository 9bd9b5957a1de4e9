package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/pkg/cache"
	"github.com/shashiranjanraj/madad/pkg/logger"
	"github.com/shashiranjanraj/madad/pkg/metrics"
)

// Cache TTLs. Vendor-by-id entries are invalidated on patch; nearby
// results can only age out, so their TTL is short.
const (
	vendorCacheTTL = 5 * time.Minute
	nearbyCacheTTL = 30 * time.Second
)

// VendorStore is the persistence contract the vendor service needs.
type VendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Vendor, bool, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.VendorPatch) (bool, error)
	Nearby(ctx context.Context, q models.NearbyQuery) ([]models.Vendor, error)
	ListAdmin(ctx context.Context, status string) ([]models.Vendor, error)
}

// VendorService implements the vendor directory operations.
type VendorService struct {
	vendors VendorStore
}

func NewVendorService(vendors VendorStore) *VendorService {
	return &VendorService{vendors: vendors}
}

// Create persists a vendor with server-assigned defaults and returns the
// full stored record including the assigned id.
func (s *VendorService) Create(ctx context.Context, in models.VendorInput) (models.Vendor, error) {
	vendor := in.ToVendor(time.Now().UTC())
	if err := s.vendors.Create(ctx, &vendor); err != nil {
		return models.Vendor{}, err
	}

	logger.WithCtx(ctx).Info("vendor created",
		"vendor_id", vendor.ID.Hex(),
		"service_type", vendor.ServiceType,
	)
	return vendor, nil
}

// Get fetches a vendor by its id string. A malformed id is rejected with
// ErrInvalidVendorID before the store is consulted.
func (s *VendorService) Get(ctx context.Context, id string) (models.Vendor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Vendor{}, ErrInvalidVendorID
	}

	var cached models.Vendor
	key := vendorCacheKey(id)
	if cache.Get(ctx, "vendor", key, &cached) {
		return cached, nil
	}

	vendor, found, err := s.vendors.FindByID(ctx, oid)
	if err != nil {
		return models.Vendor{}, err
	}
	if !found {
		return models.Vendor{}, ErrVendorNotFound
	}

	_ = cache.Set(ctx, key, vendor, vendorCacheTTL)
	return vendor, nil
}

// Update applies the non-nil patch fields. The bool reports whether the
// store was touched: an empty patch short-circuits with (zero, false, nil).
func (s *VendorService) Update(ctx context.Context, id string, patch models.VendorPatch) (models.Vendor, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Vendor{}, false, ErrInvalidVendorID
	}

	if patch.IsEmpty() {
		return models.Vendor{}, false, nil
	}

	matched, err := s.vendors.Update(ctx, oid, patch)
	if err != nil {
		return models.Vendor{}, false, err
	}
	if !matched {
		return models.Vendor{}, false, ErrVendorNotFound
	}

	_ = cache.Del(ctx, vendorCacheKey(id))

	vendor, found, err := s.vendors.FindByID(ctx, oid)
	if err != nil {
		return models.Vendor{}, false, err
	}
	if !found {
		// Matched a moment ago; the record can only have gone away under a
		// concurrent drop of the collection.
		return models.Vendor{}, false, ErrVendorNotFound
	}
	return vendor, true, nil
}

// SearchNearby returns approved vendors with active subscriptions within
// the radius, ordered by increasing distance.
func (s *VendorService) SearchNearby(ctx context.Context, q models.NearbyQuery) ([]models.Vendor, error) {
	label := q.ServiceType
	if label == "" {
		label = "all"
	}
	metrics.NearbySearches.WithLabelValues(label).Inc()

	var cached []models.Vendor
	key := nearbyCacheKey(q)
	if cache.Get(ctx, "nearby", key, &cached) {
		return cached, nil
	}

	vendors, err := s.vendors.Nearby(ctx, q)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(ctx, key, vendors, nearbyCacheTTL)
	return vendors, nil
}

// ListAdmin returns vendors for the moderation dashboard.
func (s *VendorService) ListAdmin(ctx context.Context, status string) ([]models.Vendor, error) {
	return s.vendors.ListAdmin(ctx, status)
}

func vendorCacheKey(id string) string {
	return "madad:vendor:" + id
}

func nearbyCacheKey(q models.NearbyQuery) string {
	return fmt.Sprintf("madad:nearby:%.4f:%.4f:%.2f:%s", q.Lng, q.Lat, q.RadiusKM, q.ServiceType)
}
