package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/madad/app/controllers"
	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/app/services"
	"github.com/shashiranjanraj/madad/pkg/auth"
	"github.com/shashiranjanraj/madad/pkg/middleware"
	"github.com/shashiranjanraj/madad/pkg/rbac"
	"github.com/shashiranjanraj/madad/pkg/router"
)

// In-memory stores backing the handler under test.

type memUserStore struct {
	users []models.User
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, bool, error) {
	for _, u := range m.users {
		if u.Email != "" && u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (m *memUserStore) FindByPhone(_ context.Context, phone string) (models.User, bool, error) {
	for _, u := range m.users {
		if u.Phone != "" && u.Phone == phone {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (m *memUserStore) FindByID(_ context.Context, id string) (models.User, bool, error) {
	for _, u := range m.users {
		if u.ID.Hex() == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, *user)
	return nil
}

type memVendorStore struct {
	vendors map[primitive.ObjectID]models.Vendor
}

func newMemVendorStore() *memVendorStore {
	return &memVendorStore{vendors: make(map[primitive.ObjectID]models.Vendor)}
}

func (m *memVendorStore) Create(_ context.Context, vendor *models.Vendor) error {
	vendor.ID = primitive.NewObjectID()
	m.vendors[vendor.ID] = *vendor
	return nil
}

func (m *memVendorStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Vendor, bool, error) {
	v, ok := m.vendors[id]
	return v, ok, nil
}

func (m *memVendorStore) Update(_ context.Context, id primitive.ObjectID, patch models.VendorPatch) (bool, error) {
	v, ok := m.vendors[id]
	if !ok {
		return false, nil
	}
	if patch.Approved != nil {
		v.Approved = *patch.Approved
	}
	if patch.Verified != nil {
		v.Verified = *patch.Verified
	}
	if patch.PaymentStatus != nil {
		v.PaymentStatus = models.PaymentStatus(*patch.PaymentStatus)
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Phone != nil {
		v.Phone = *patch.Phone
	}
	if patch.Address != nil {
		v.Address = *patch.Address
	}
	if patch.Description != nil {
		v.Description = *patch.Description
	}
	m.vendors[id] = v
	return true, nil
}

func (m *memVendorStore) Nearby(_ context.Context, q models.NearbyQuery) ([]models.Vendor, error) {
	out := []models.Vendor{}
	for _, v := range m.vendors {
		if !v.Approved || v.PaymentStatus != models.PaymentActive {
			continue
		}
		if q.ServiceType != "" && string(v.ServiceType) != q.ServiceType {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memVendorStore) ListAdmin(_ context.Context, status string) ([]models.Vendor, error) {
	out := []models.Vendor{}
	for _, v := range m.vendors {
		switch status {
		case "pending":
			if v.Approved {
				continue
			}
		case "active":
			if !v.Approved || v.PaymentStatus != models.PaymentActive {
				continue
			}
		}
		out = append(out, v)
	}
	return out, nil
}

type memPaymentStore struct {
	payments []models.Payment
}

func (m *memPaymentStore) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = primitive.NewObjectID()
	m.payments = append(m.payments, *payment)
	return nil
}

// testEnv is the handler under test plus the backing stores for
// seeding and inspection.
type testEnv struct {
	handler  http.Handler
	users    *memUserStore
	vendors  *memVendorStore
	payments *memPaymentStore
}

// newTestEnv wires the real controllers, auth middleware and role gate
// over in-memory stores, on the same routes the server registers.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    &memUserStore{},
		vendors:  newMemVendorStore(),
		payments: &memPaymentStore{},
	}

	authService := services.NewAuthService(env.users)
	vendorService := services.NewVendorService(env.vendors)
	paymentService := services.NewPaymentService(env.payments)

	authController := controllers.NewAuthController(authService)
	vendorController := controllers.NewVendorController(vendorService)
	paymentController := controllers.NewPaymentController(paymentService)

	requireAuth := middleware.Auth(authService.ResolveIdentity)
	requireAdmin := rbac.HasRole(models.RoleAdmin)

	r := router.New()
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", "auth.register", authController.Register)
	authGroup.Post("/login", "auth.login", authController.Login)
	authGroup.Get("/me", "auth.me", authController.Me, requireAuth)

	vendors := api.Group("/vendors")
	vendors.Get("/nearby", "vendors.nearby", vendorController.Nearby)
	vendors.Post("", "vendors.create", vendorController.Create, requireAuth)
	vendors.Get("/{id}", "vendors.show", vendorController.Get)
	vendors.Patch("/{id}", "vendors.update", vendorController.Update, requireAuth)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.Get("/vendors", "admin.vendors", vendorController.AdminList)

	api.Post("/payments", "payments.create", paymentController.Create, requireAuth)

	env.handler = r.Handler()
	return env
}

// seedUser inserts a user directly and returns a valid token for it.
func (e *testEnv) seedUser(t *testing.T, role string) (models.User, string) {
	t.Helper()

	hashed, err := auth.HashPassword("hunter22")
	require.NoError(t, err)

	user := models.User{
		Name:           "Seeded",
		Email:          primitive.NewObjectID().Hex() + "@example.com",
		HashedPassword: hashed,
		Role:           role,
	}
	require.NoError(t, e.users.Create(context.Background(), &user))

	token, err := auth.IssueToken(user.ID.Hex())
	require.NoError(t, err)
	return user, token
}

// seedVendor inserts a vendor directly into the store.
func (e *testEnv) seedVendor(t *testing.T, name string, approved bool, status models.PaymentStatus) models.Vendor {
	t.Helper()

	v := models.Vendor{
		Name:          name,
		Phone:         "+923000000000",
		ServiceType:   models.ServiceMechanic,
		Location:      models.NewGeoPoint(67.03, 24.86),
		Approved:      approved,
		PaymentStatus: status,
	}
	require.NoError(t, e.vendors.Create(context.Background(), &v))
	return v
}
