package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var (
	_ repository.ServiceRepository      = (*ServiceRepo)(nil)
	_ repository.AvailabilityRepository = (*AvailabilityRepo)(nil)
	_ repository.BookingRepository      = (*BookingRepo)(nil)
)

// ServiceRepo servicios reservables.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador.
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, company_id, name, description, duration, price, buffer_time, is_active, created_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	if err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.Duration, &s.Price,
		&s.BufferTime, &s.IsActive, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un servicio.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO services (id, company_id, name, description, duration, price, buffer_time, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.CompanyID, s.Name, s.Description, s.Duration, s.Price, s.BufferTime, s.IsActive, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByCompanyAndID obtiene un servicio de la empresa.
func (r *ServiceRepo) GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Service, error) {
	s, err := scanService(r.q.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// ListActiveByCompany servicios activos de la empresa.
func (r *ServiceRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE company_id = $1 AND is_active ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// AvailabilityRepo franjas de disponibilidad.
type AvailabilityRepo struct {
	q Querier
}

// NewAvailabilityRepository construye el adaptador.
func NewAvailabilityRepository(q Querier) *AvailabilityRepo {
	return &AvailabilityRepo{q: q}
}

// Create persiste una franja.
func (r *AvailabilityRepo) Create(ctx context.Context, a *entity.Availability) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO availability (id, company_id, staff_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.CompanyID, nullIfEmpty(a.StaffID), a.DayOfWeek, a.StartTime, a.EndTime, a.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return nil
}

// ListActiveByCompany franjas activas ordenadas por día y hora.
func (r *AvailabilityRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Availability, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, staff_id, day_of_week, start_time, end_time, is_active
		FROM availability WHERE company_id = $1 AND is_active ORDER BY day_of_week, start_time`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()
	var list []*entity.Availability
	for rows.Next() {
		var a entity.Availability
		var staffID *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &staffID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		a.StaffID = fromNull(staffID)
		list = append(list, &a)
	}
	return list, rows.Err()
}

// BookingRepo reservas.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador.
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `id, company_id, service_id, client_id, staff_id, booking_time, status,
	client_name, client_email, client_phone, notes, created_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var clientID, staffID *string
	if err := row.Scan(&b.ID, &b.CompanyID, &b.ServiceID, &clientID, &staffID, &b.BookingTime, &b.Status,
		&b.ClientName, &b.ClientEmail, &b.ClientPhone, &b.Notes, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.ClientID = fromNull(clientID)
	b.StaffID = fromNull(staffID)
	return &b, nil
}

// Create persiste una reserva.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bookings (id, company_id, service_id, client_id, staff_id, booking_time, status,
			client_name, client_email, client_phone, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.CompanyID, b.ServiceID, nullIfEmpty(b.ClientID), nullIfEmpty(b.StaffID), b.BookingTime, b.Status,
		b.ClientName, b.ClientEmail, b.ClientPhone, b.Notes, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByCompanyAndID obtiene una reserva de la empresa.
func (r *BookingRepo) GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Booking, error) {
	b, err := scanBooking(r.q.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListByCompany reservas de la empresa ordenadas por fecha; status vacío = todas.
func (r *BookingRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Booking, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY booking_time LIMIT $3 OFFSET $4`, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una reserva de la empresa.
func (r *BookingRepo) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE bookings SET status = $3 WHERE company_id = $1 AND id = $2`, companyID, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus número de reservas de la empresa en el estado indicado.
func (r *BookingRepo) CountByStatus(ctx context.Context, companyID, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE company_id = $1 AND status = $2`, companyID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
