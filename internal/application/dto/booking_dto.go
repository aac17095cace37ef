package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest alta de servicio reservable.
type CreateServiceRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	Duration    int             `json:"duration" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	BufferTime  int             `json:"buffer_time" validate:"min=0"`
}

// ServiceResponse servicio público.
type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	BufferTime  int             `json:"buffer_time"`
}

// CreateAvailabilityRequest franja semanal. StaffID vacío = general de la empresa.
type CreateAvailabilityRequest struct {
	StaffID   string `json:"staff_id" validate:"omitempty,uuid"`
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// AvailabilityResponse franja publicada.
type AvailabilityResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateBookingRequest reserva de invitado (pública).
type CreateBookingRequest struct {
	CompanyID   string    `json:"company_id" validate:"required,uuid"`
	ServiceID   string    `json:"service_id" validate:"required,uuid"`
	StaffID     string    `json:"staff_id" validate:"required,uuid"`
	BookingTime time.Time `json:"booking_time" validate:"required"`
	ClientName  string    `json:"client_name" validate:"required"`
	ClientEmail string    `json:"client_email" validate:"required,email"`
	ClientPhone string    `json:"client_phone"`
	Notes       string    `json:"notes"`
}

// BookingResponse reserva vista por staff.
type BookingResponse struct {
	ID          string    `json:"id"`
	ServiceID   string    `json:"service_id"`
	StaffID     string    `json:"staff_id,omitempty"`
	ClientID    string    `json:"client_id,omitempty"`
	BookingTime time.Time `json:"booking_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClientPhone string    `json:"client_phone,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateStatusRequest cambio de estado genérico (reservas, facturas).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
