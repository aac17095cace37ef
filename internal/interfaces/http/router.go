package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/bizos-api/internal/application/analytics"
	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/billing"
	"github.com/jhoicas/bizos-api/internal/application/inventory"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gate      *auth.Gate
	Modules   *usecase.ModuleService
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	CompanyUC *usecase.CompanyUseCase
	PortalUC  *usecase.PortalUseCase
	BookingUC *usecase.BookingUseCase
	ReportUC  *usecase.ReportUseCase
	SocialUC  *usecase.SocialUseCase
	Invoices  *billing.InvoiceUseCase
	Receipts  *billing.ReceiptUseCase
	PDF       *billing.PDFUseCase
	Inventory *inventory.UseCase
	Dashboard *appanalytics.DashboardUseCase
}

// Router registra las rutas de la API bajo /api/v1.
// Orden de cada cadena: autenticación → módulo → permiso → handler.
func Router(app *fiber.App, deps RouterDeps) {
	staff := Authenticate(deps.Gate, authz.KindStaff)
	client := Authenticate(deps.Gate, authz.KindClient)
	can := func(p authz.Permission) fiber.Handler { return RequirePermission(deps.Gate, p) }
	module := func(name string) fiber.Handler { return RequireModule(name, deps.Modules) }

	api := app.Group("/api/v1")

	// Auth (público salvo me y equipo)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", staff, authHandler.Me)
	team := []fiber.Handler{staff, module(entity.ModuleTeamOnboarding), can(authz.TeamManage)}
	authGroup.Get("/users", append(team, authHandler.ListUsers)...)
	authGroup.Post("/users", append(team, authHandler.CreateUser)...)
	authGroup.Patch("/users/:id/status", append(team, authHandler.UpdateUserStatus)...)

	// Company
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company := api.Group("/company", staff)
	company.Get("/", companyHandler.Get)
	company.Patch("/modules", can(authz.CompanyManage), companyHandler.UpdateModules)

	// Portal: login público, vistas del cliente y gestión del staff
	portalHandler := NewPortalHandler(deps.AuthUC, deps.PortalUC)
	portal := api.Group("/portal")
	portal.Post("/login", portalHandler.Login)
	portal.Get("/me", client, module(entity.ModuleClientPortal), portalHandler.Me)
	portal.Get("/updates", client, module(entity.ModuleClientPortal), portalHandler.Updates)
	portal.Get("/invoices", client, module(entity.ModuleClientPortal), portalHandler.Invoices)
	portalStaff := portal.Group("/staff", staff, module(entity.ModuleClientPortal))
	portalStaff.Get("/clients", can(authz.PortalView), portalHandler.ListClients)
	portalStaff.Post("/clients", can(authz.PortalCreate), portalHandler.CreateClient)
	portalStaff.Post("/updates", can(authz.PortalCreate), portalHandler.PostUpdate)

	// Bookings: los endpoints públicos resuelven la empresa por company_id
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookings := api.Group("/bookings")
	bookings.Get("/services", bookingHandler.ListServices)
	bookings.Get("/availability", bookingHandler.ListAvailability)
	bookings.Post("/book", bookingHandler.Book)
	bookingStaff := bookings.Group("/staff", staff, module(entity.ModuleBookings), can(authz.BookingsManage))
	bookingStaff.Post("/services", bookingHandler.CreateService)
	bookingStaff.Post("/availability", bookingHandler.CreateAvailability)
	bookingStaff.Get("/bookings", bookingHandler.ListBookings)
	bookingStaff.Patch("/bookings/:id/status", bookingHandler.UpdateBookingStatus)

	// Invoicing
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Receipts, deps.PDF)
	invoicing := api.Group("/invoicing", staff, module(entity.ModuleInvoicing))
	invoicing.Get("/invoices", invoiceHandler.List)
	invoicing.Post("/invoices", can(authz.InvoicingManage), invoiceHandler.Create)
	invoicing.Get("/invoices/:id", invoiceHandler.GetByID)
	invoicing.Patch("/invoices/:id/status", can(authz.InvoicingManage), invoiceHandler.UpdateStatus)
	invoicing.Delete("/invoices/:id", can(authz.InvoicingManage), invoiceHandler.Delete)
	invoicing.Get("/invoices/:id/pdf", can(authz.InvoicingManage), invoiceHandler.DownloadPDF)
	invoicing.Post("/receipts/scan", can(authz.InvoicingScan), invoiceHandler.ScanReceipt)
	invoicing.Get("/receipts", invoiceHandler.ListReceipts)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	inv := api.Group("/inventory", staff, module(entity.ModuleInventory))
	inv.Get("/products", inventoryHandler.ListProducts)
	inv.Post("/products", can(authz.InventoryManage), inventoryHandler.CreateProduct)
	inv.Get("/products/:id/movements", inventoryHandler.ListMovements)
	inv.Get("/categories", inventoryHandler.ListCategories)
	inv.Post("/categories", can(authz.InventoryManage), inventoryHandler.CreateCategory)
	inv.Post("/stock/update", can(authz.InventoryManage), inventoryHandler.UpdateStock)

	// Reports: reportes de campo (staff) y encuestas (públicas para responder)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := api.Group("/reports")
	fieldReports := reports.Group("/field-reports", staff, module(entity.ModuleFieldReports))
	fieldReports.Post("/", reportHandler.CreateFieldReport)
	fieldReports.Get("/", reportHandler.ListFieldReports)
	reports.Get("/surveys", reportHandler.ListSurveys)
	reports.Post("/surveys/:id/respond", OptionalClient(deps.Gate), reportHandler.Respond)
	reports.Post("/surveys", staff, module(entity.ModuleSurveys), can(authz.ReportsManage), reportHandler.CreateSurvey)
	reports.Get("/surveys/:id/responses", staff, module(entity.ModuleSurveys), can(authz.ReportsManage), reportHandler.ListResponses)

	// Social
	socialHandler := NewSocialHandler(deps.SocialUC)
	social := api.Group("/social", staff, module(entity.ModuleSocialScheduler))
	social.Get("/platforms", socialHandler.ListPlatforms)
	social.Post("/platforms", can(authz.SocialManage), socialHandler.ConnectPlatform)
	social.Get("/posts", socialHandler.ListPosts)
	social.Post("/posts", can(authz.SocialManage), socialHandler.SchedulePost)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/stats", staff, dashboardHandler.GetStats)
}
