package routes

import (
	"github.com/shashiranjanraj/madad/app/controllers"
	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/app/repositories"
	"github.com/shashiranjanraj/madad/app/services"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/middleware"
	"github.com/shashiranjanraj/madad/pkg/rbac"
	"github.com/shashiranjanraj/madad/pkg/router"
)

// RegisterAPI wires repositories, services and controllers onto the router.
//
// Vendor and payment creation and vendor patching all sit behind a bearer
// token. The admin vendor listing additionally requires the admin role.
func RegisterAPI(r *router.Router, s *store.Store) {
	authService := services.NewAuthService(repositories.NewUserRepository(s))
	vendorService := services.NewVendorService(repositories.NewVendorRepository(s))
	paymentService := services.NewPaymentService(repositories.NewPaymentRepository(s))

	statusController := controllers.NewStatusController(s)
	authController := controllers.NewAuthController(authService)
	vendorController := controllers.NewVendorController(vendorService)
	paymentController := controllers.NewPaymentController(paymentService)

	requireAuth := middleware.Auth(authService.ResolveIdentity)
	requireAdmin := rbac.HasRole(models.RoleAdmin)

	r.Get("/", "status.root", statusController.Root)
	r.Get("/test", "status.test", statusController.Test)

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
}
