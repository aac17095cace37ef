package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Booking.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingNoShow    = "no-show"
)

// ValidBookingStatus informa si s es un estado de reserva conocido.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Service servicio reservable de la empresa.
type Service struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Duration    int // minutos
	Price       decimal.Decimal
	BufferTime  int // minutos
	IsActive    bool
	CreatedAt   time.Time
}

// Availability franja semanal. StaffID vacío = disponibilidad general de la empresa.
type Availability struct {
	ID        string
	CompanyID string
	StaffID   string
	DayOfWeek int    // 0-6 (lunes-domingo)
	StartTime string // HH:MM
	EndTime   string // HH:MM
	IsActive  bool
}

// Booking reserva. ClientID vacío = reserva de invitado con datos de contacto desnormalizados.
type Booking struct {
	ID          string
	CompanyID   string
	ServiceID   string
	ClientID    string
	StaffID     string
	BookingTime time.Time
	Status      string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       string
	CreatedAt   time.Time
}
