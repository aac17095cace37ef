package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/application/auth"
	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

// BookingUseCase servicios reservables, disponibilidad y reservas.
type BookingUseCase struct {
	repos     repository.Repositories
	publisher ports.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(repos repository.Repositories, publisher ports.EventPublisher, log *logger.Logger) *BookingUseCase {
	return &BookingUseCase{repos: repos, publisher: publisher, log: log, now: time.Now}
}

// ListServices servicios activos de una empresa (público).
func (uc *BookingUseCase) ListServices(ctx context.Context, companyID string) ([]dto.ServiceResponse, error) {
	company, err := publicCompany(ctx, uc.repos.Companies, companyID, entity.ModuleBookings)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Services.ListActiveByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ServiceResponse{
			ID: s.ID, Name: s.Name, Description: s.Description,
			Duration: s.Duration, Price: s.Price, BufferTime: s.BufferTime,
		})
	}
	return out, nil
}

// CreateService alta de servicio en la empresa del token.
func (uc *BookingUseCase) CreateService(ctx context.Context, ac authz.Context, in dto.CreateServiceRequest) (*dto.CreatedResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	if in.Duration <= 0 {
		return nil, domain.Invalid("duration debe ser mayor que cero")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price no puede ser negativo")
	}
	if in.BufferTime < 0 {
		return nil, domain.Invalid("buffer_time no puede ser negativo")
	}
	svc := &entity.Service{
		ID:          uuid.New().String(),
		CompanyID:   ac.CompanyID(),
		Name:        name,
		Description: in.Description,
		Duration:    in.Duration,
		Price:       in.Price.Round(2),
		BufferTime:  in.BufferTime,
		IsActive:    true,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.repos.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return &dto.CreatedResponse{Message: "Service created", ID: svc.ID}, nil
}

// CreateAvailability publica una franja semanal. Si trae staff_id, debe ser staff de la empresa.
func (uc *BookingUseCase) CreateAvailability(ctx context.Context, ac authz.Context, in dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return nil, domain.Invalid("day_of_week debe estar entre 0 y 6")
	}
	start, err1 := time.Parse("15:04", in.StartTime)
	end, err2 := time.Parse("15:04", in.EndTime)
	if err1 != nil || err2 != nil {
		return nil, domain.Invalid("start_time y end_time deben tener formato HH:MM")
	}
	if !end.After(start) {
		return nil, domain.Invalid("end_time debe ser posterior a start_time")
	}
	if in.StaffID != "" {
		if err := uc.requireStaff(ctx, ac.CompanyID(), in.StaffID); err != nil {
			return nil, err
		}
	}
	a := &entity.Availability{
		ID:        uuid.New().String(),
		CompanyID: ac.CompanyID(),
		StaffID:   in.StaffID,
		DayOfWeek: in.DayOfWeek,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		IsActive:  true,
	}
	if err := uc.repos.Availability.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAvailabilityResponse(a), nil
}

// ListAvailability franjas activas de una empresa (público).
func (uc *BookingUseCase) ListAvailability(ctx context.Context, companyID string) ([]dto.AvailabilityResponse, error) {
	company, err := publicCompany(ctx, uc.repos.Companies, companyID, entity.ModuleBookings)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Availability.ListActiveByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailabilityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAvailabilityResponse(a))
	}
	return out, nil
}

// Book reserva de invitado. company_id es solo clave de búsqueda: servicio y staff deben
// existir, estar activos y pertenecer a esa misma empresa.
func (uc *BookingUseCase) Book(ctx context.Context, in dto.CreateBookingRequest) (*dto.CreatedResponse, error) {
	name := strings.TrimSpace(in.ClientName)
	email := auth.NormalizeEmail(in.ClientEmail)
	if in.ServiceID == "" || in.StaffID == "" || name == "" || email == "" || in.BookingTime.IsZero() {
		return nil, domain.Invalid("company_id, service_id, staff_id, booking_time, client_name y client_email son obligatorios")
	}
	if !auth.ValidEmail(email) {
		return nil, domain.Invalid("client_email inválido")
	}
	if !in.BookingTime.After(uc.now()) {
		return nil, domain.Invalid("booking_time debe ser futuro")
	}
	company, err := publicCompany(ctx, uc.repos.Companies, in.CompanyID, entity.ModuleBookings)
	if err != nil {
		return nil, err
	}
	if !IsID(in.ServiceID) {
		return nil, fmt.Errorf("%w: servicio", domain.ErrNotFound)
	}
	svc, err := uc.repos.Services.GetByCompanyAndID(ctx, company.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.IsActive {
		return nil, fmt.Errorf("%w: servicio", domain.ErrNotFound)
	}
	if err := uc.requireStaff(ctx, company.ID, in.StaffID); err != nil {
		return nil, err
	}

	b := &entity.Booking{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		ServiceID:   svc.ID,
		StaffID:     in.StaffID,
		BookingTime: in.BookingTime.UTC(),
		Status:      entity.BookingPending,
		ClientName:  name,
		ClientEmail: email,
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		Notes:       in.Notes,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.repos.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	ports.Notify(ctx, uc.publisher, uc.log, ports.Event{
		Type:      ports.EventBookingCreated,
		CompanyID: company.ID,
		EntityID:  b.ID,
		Data:      map[string]any{"service_id": svc.ID, "staff_id": b.StaffID, "booking_time": b.BookingTime},
	})
	return &dto.CreatedResponse{Message: "Booking request received", ID: b.ID}, nil
}

// ListBookings reservas de la empresa, opcionalmente filtradas por estado.
func (uc *BookingUseCase) ListBookings(ctx context.Context, ac authz.Context, status string, page dto.PageRequest) ([]dto.BookingResponse, error) {
	if status != "" && !entity.ValidBookingStatus(status) {
		return nil, domain.Invalid("status inválido %q", status)
	}
	page.DefaultPage()
	list, err := uc.repos.Bookings.ListByCompany(ctx, ac.CompanyID(), status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBookingResponse(b))
	}
	return out, nil
}

// UpdateBookingStatus cambia el estado de una reserva de la empresa.
func (uc *BookingUseCase) UpdateBookingStatus(ctx context.Context, ac authz.Context, id, status string) (*dto.BookingResponse, error) {
	if !entity.ValidBookingStatus(status) {
		return nil, domain.Invalid("status inválido %q", status)
	}
	if !IsID(id) {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repos.Bookings.GetByCompanyAndID(ctx, ac.CompanyID(), id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repos.Bookings.UpdateStatus(ctx, ac.CompanyID(), id, status); err != nil {
		return nil, err
	}
	b.Status = status
	return toBookingResponse(b), nil
}

// requireStaff staff existente, activo y de la empresa indicada.
func (uc *BookingUseCase) requireStaff(ctx context.Context, companyID, staffID string) error {
	if !IsID(staffID) {
		return fmt.Errorf("%w: staff", domain.ErrNotFound)
	}
	staff, err := uc.repos.Users.GetByCompanyAndID(ctx, companyID, staffID)
	if err != nil {
		return err
	}
	if staff == nil || !staff.IsActive() {
		return fmt.Errorf("%w: staff", domain.ErrNotFound)
	}
	return nil
}

func toAvailabilityResponse(a *entity.Availability) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		ID: a.ID, StaffID: a.StaffID, DayOfWeek: a.DayOfWeek, StartTime: a.StartTime, EndTime: a.EndTime,
	}
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:          b.ID,
		ServiceID:   b.ServiceID,
		StaffID:     b.StaffID,
		ClientID:    b.ClientID,
		BookingTime: b.BookingTime,
		Status:      b.Status,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
}
