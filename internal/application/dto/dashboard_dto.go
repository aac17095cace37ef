package dto

// DashboardStatsResponse contadores de GET /dashboard/stats.
type DashboardStatsResponse struct {
	Clients         int    `json:"clients"`
	PendingBookings int    `json:"pending_bookings"`
	UnpaidInvoices  int    `json:"unpaid_invoices"`
	Status          string `json:"status"`
}
