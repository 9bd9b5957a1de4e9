package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestGeoPointValid(t *testing.T) {
	assert.True(t, NewGeoPoint(67.0011, 24.8607).Valid())
	assert.True(t, NewGeoPoint(-180, -90).Valid())
	assert.True(t, NewGeoPoint(180, 90).Valid())

	assert.False(t, NewGeoPoint(181, 0).Valid(), "longitude out of range")
	assert.False(t, NewGeoPoint(0, -91).Valid(), "latitude out of range")
	assert.False(t, GeoPoint{Type: "Polygon", Coordinates: []float64{1, 2}}.Valid())
	assert.False(t, GeoPoint{Type: "Point", Coordinates: []float64{1}}.Valid())
	assert.False(t, GeoPoint{}.Valid())
}

func TestServiceTypeValid(t *testing.T) {
	for _, s := range ServiceTypes() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ServiceType("carpenter").Valid())
	assert.False(t, ServiceType("").Valid())
}

func TestVendorInputDefaults(t *testing.T) {
	now := time.Now()
	in := VendorInput{
		Name:        "Bilal Tow Service",
		Phone:       "+923001234567",
		ServiceType: "tow_truck",
		Location:    NewGeoPoint(67.0011, 24.8607),
	}

	v := in.ToVendor(now)
	assert.False(t, v.Approved)
	assert.False(t, v.Verified)
	assert.Equal(t, PaymentUnpaid, v.PaymentStatus)
	assert.Equal(t, now, v.CreatedAt)
	assert.Equal(t, now, v.UpdatedAt)
	assert.Empty(t, v.Address)
}

func TestVendorInputOverrides(t *testing.T) {
	approved := true
	status := "active"
	in := VendorInput{
		Name:          "Bilal Tow Service",
		Phone:         "+923001234567",
		ServiceType:   "tow_truck",
		Location:      NewGeoPoint(67.0011, 24.8607),
		Approved:      &approved,
		PaymentStatus: &status,
	}

	v := in.ToVendor(time.Now())
	assert.True(t, v.Approved)
	assert.Equal(t, PaymentActive, v.PaymentStatus)
}

func TestVendorInputValidateLocation(t *testing.T) {
	in := VendorInput{Location: GeoPoint{Type: "Point", Coordinates: []float64{200, 0}}}
	errs := in.Validate()
	assert.Contains(t, errs, "location")

	in.Location = NewGeoPoint(67, 24)
	assert.Empty(t, in.Validate())
}

func TestVendorPatchIsEmpty(t *testing.T) {
	assert.True(t, VendorPatch{}.IsEmpty())

	approved := true
	assert.False(t, VendorPatch{Approved: &approved}.IsEmpty())
}

func TestVendorPatchToUpdate(t *testing.T) {
	now := time.Now()
	approved := true
	status := "active"
	patch := VendorPatch{Approved: &approved, PaymentStatus: &status}

	update := patch.ToUpdate(now)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)

	assert.Equal(t, true, set["approved"])
	assert.Equal(t, PaymentActive, set["payment_status"])
	assert.Equal(t, now, set["updated_at"])

	// Fields left nil must not be mentioned at all.
	assert.NotContains(t, set, "verified")
	assert.NotContains(t, set, "name")
	assert.NotContains(t, set, "phone")
}

func TestNearbyQueryRadiusMeters(t *testing.T) {
	assert.Equal(t, 5000, NearbyQuery{RadiusKM: 5}.RadiusMeters())
	assert.Equal(t, 2500, NearbyQuery{RadiusKM: 2.5}.RadiusMeters())
	assert.Equal(t, 0, NearbyQuery{}.RadiusMeters())
}
