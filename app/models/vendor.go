package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceType is a vendor's primary service category.
type ServiceType string

const (
	ServiceTowTruck    ServiceType = "tow_truck"
	ServiceMechanic    ServiceType = "mechanic"
	ServiceHotel       ServiceType = "hotel"
	ServiceMedical     ServiceType = "medical"
	ServiceCarWash     ServiceType = "car_wash"
	ServiceElectrician ServiceType = "electrician"
	ServicePlumber     ServiceType = "plumber"
)

// ServiceTypes lists every valid category.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceTowTruck, ServiceMechanic, ServiceHotel, ServiceMedical,
		ServiceCarWash, ServiceElectrician, ServicePlumber,
	}
}

// Valid reports whether s is a known service category.
func (s ServiceType) Valid() bool {
	for _, t := range ServiceTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// PaymentStatus is a vendor's subscription standing.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentActive  PaymentStatus = "active"
	PaymentExpired PaymentStatus = "expired"
)

// Valid reports whether p is a known subscription status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentActive, PaymentExpired:
		return true
	}
	return false
}

// GeoPoint is a GeoJSON Point. Coordinates are ordered [lng, lat].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Valid checks the GeoJSON invariants: exactly two coordinates,
// longitude in [-180,180] and latitude in [-90,90].
func (g GeoPoint) Valid() bool {
	if g.Type != "Point" || len(g.Coordinates) != 2 {
		return false
	}
	lng, lat := g.Coordinates[0], g.Coordinates[1]
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

// Lng returns the longitude.
func (g GeoPoint) Lng() float64 { return g.Coordinates[0] }

// Lat returns the latitude.
func (g GeoPoint) Lat() float64 { return g.Coordinates[1] }

// Vendor is a registered service provider with a geolocation.
type Vendor struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Phone         string             `bson:"phone" json:"phone"`
	ServiceType   ServiceType        `bson:"service_type" json:"service_type"`
	Location      GeoPoint           `bson:"location" json:"location"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Approved      bool               `bson:"approved" json:"approved"`
	Verified      bool               `bson:"verified" json:"verified"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"payment_status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// VendorInput is the request body for POST /api/vendors.
type VendorInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=120"`
	Phone         string   `json:"phone" validate:"required,min=7,max=20"`
	ServiceType   string   `json:"service_type" validate:"required,in=tow_truck,mechanic,hotel,medical,car_wash,electrician,plumber"`
	Location      GeoPoint `json:"location"`
	Address       *string  `json:"address"`
	Description   *string  `json:"description"`
	Approved      *bool    `json:"approved"`
	Verified      *bool    `json:"verified"`
	PaymentStatus *string  `json:"payment_status" validate:"nullable,in=unpaid,active,expired"`
}

// Validate runs the checks the tag validator cannot express (the nested
// GeoJSON point). Returns extra field errors to merge with bind errors.
func (in VendorInput) Validate() map[string]string {
	errs := make(map[string]string)
	if !in.Location.Valid() {
		errs["location"] = "The location must be a GeoJSON Point with coordinates [lng, lat]."
	}
	return errs
}

// ToVendor materialises the input with server-assigned defaults:
// approved=false, verified=false, payment_status=unpaid unless overridden.
func (in VendorInput) ToVendor(now time.Time) Vendor {
	v := Vendor{
		Name:          in.Name,
		Phone:         in.Phone,
		ServiceType:   ServiceType(in.ServiceType),
		Location:      in.Location,
		Address:       strOrEmpty(in.Address),
		Description:   strOrEmpty(in.Description),
		PaymentStatus: PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Approved != nil {
		v.Approved = *in.Approved
	}
	if in.Verified != nil {
		v.Verified = *in.Verified
	}
	if in.PaymentStatus != nil {
		v.PaymentStatus = PaymentStatus(*in.PaymentStatus)
	}
	return v
}

// NearbyQuery describes a geospatial vendor search.
type NearbyQuery struct {
	Lng         float64
	Lat         float64
	RadiusKM    float64
	ServiceType string // empty = all categories
}

// RadiusMeters converts the search radius for $maxDistance.
func (q NearbyQuery) RadiusMeters() int {
	return int(q.RadiusKM * 1000)
}

// VendorPatch is the typed partial update for PATCH /api/vendors/{id}.
// Only non-nil fields overwrite stored values.
type VendorPatch struct {
	Approved      *bool   `json:"approved"`
	Verified      *bool   `json:"verified"`
	PaymentStatus *string `json:"payment_status" validate:"nullable,in=unpaid,active,expired"`
	Name          *string `json:"name" validate:"nullable,min=2,max=120"`
	Phone         *string `json:"phone" validate:"nullable,min=7,max=20"`
	Address       *string `json:"address"`
	Description   *string `json:"description"`
}

// IsEmpty reports whether the patch would change nothing.
func (p VendorPatch) IsEmpty() bool {
	return p.Approved == nil && p.Verified == nil && p.PaymentStatus == nil &&
		p.Name == nil && p.Phone == nil && p.Address == nil && p.Description == nil
}

// ToUpdate builds the field-by-field $set document. Fields left nil are
// not mentioned, so the stored values stay untouched.
func (p VendorPatch) ToUpdate(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Approved != nil {
		set["approved"] = *p.Approved
	}
	if p.Verified != nil {
		set["verified"] = *p.Verified
	}
	if p.PaymentStatus != nil {
		set["payment_status"] = PaymentStatus(*p.PaymentStatus)
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return bson.M{"$set": set}
}
