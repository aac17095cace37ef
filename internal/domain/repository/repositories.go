package repository

import "context"

// Repositories agrupa los puertos de persistencia. Dentro de TxRunner.Run todos
// comparten la misma transacción.
type Repositories struct {
	Companies       CompanyRepository
	Users           UserRepository
	Clients         ClientRepository
	ProjectUpdates  ProjectUpdateRepository
	Services        ServiceRepository
	Availability    AvailabilityRepository
	Bookings        BookingRepository
	Categories      CategoryRepository
	Products        ProductRepository
	StockMovements  StockMovementRepository
	Invoices        InvoiceRepository
	Receipts        ReceiptRepository
	FieldReports    FieldReportRepository
	Surveys         SurveyRepository
	SurveyResponses SurveyResponseRepository
	Platforms       SocialPlatformRepository
	Posts           SocialPostRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repositories) error) error
}
