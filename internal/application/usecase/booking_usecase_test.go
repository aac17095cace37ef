package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

func bookingSetup(t *testing.T) (*fixture, *usecase.BookingUseCase, string) {
	t.Helper()
	f := newFixture(t)
	uc := usecase.NewBookingUseCase(f.repos, f.events, logger.Nop())
	svc, err := uc.CreateService(context.Background(), f.acme.owner(), dto.CreateServiceRequest{
		Name: "Masaje", Duration: 60, Price: decimal.NewFromInt(80), BufferTime: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "Service created", svc.Message)
	return f, uc, svc.ID
}

func booking(f *fixture, serviceID string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CompanyID:   f.acme.companyID,
		ServiceID:   serviceID,
		StaffID:     f.acme.ownerID,
		BookingTime: time.Now().Add(48 * time.Hour),
		ClientName:  "Laura",
		ClientEmail: "Laura@Mail.com",
	}
}

func TestBooking_ReservaDeInvitado(t *testing.T) {
	f, uc, serviceID := bookingSetup(t)
	ctx := context.Background()

	services, err := uc.ListServices(ctx, f.acme.companyID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, 60, services[0].Duration)

	res, err := uc.Book(ctx, booking(f, serviceID))
	require.NoError(t, err)
	assert.Equal(t, "Booking request received", res.Message)
	assert.Equal(t, []string{ports.EventBookingCreated}, f.events.types())

	list, err := uc.ListBookings(ctx, f.acme.owner(), entity.BookingPending, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "laura@mail.com", list[0].ClientEmail)

	other, err := uc.ListBookings(ctx, f.globex.owner(), "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBooking_Validaciones(t *testing.T) {
	f, uc, serviceID := bookingSetup(t)
	ctx := context.Background()

	past := booking(f, serviceID)
	past.BookingTime = time.Now().Add(-time.Hour)
	_, err := uc.Book(ctx, past)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noEmail := booking(f, serviceID)
	noEmail.ClientEmail = "no-es-email"
	_, err = uc.Book(ctx, noEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	foreignStaff := booking(f, serviceID)
	foreignStaff.StaffID = f.globex.ownerID
	_, err = uc.Book(ctx, foreignStaff)
	assert.ErrorIs(t, err, domain.ErrNotFound, "staff de otra empresa")

	wrongCompany := booking(f, serviceID)
	wrongCompany.CompanyID = f.globex.companyID
	wrongCompany.StaffID = f.globex.ownerID
	_, err = uc.Book(ctx, wrongCompany)
	assert.ErrorIs(t, err, domain.ErrNotFound, "servicio de otra empresa")

	unknown := booking(f, serviceID)
	unknown.CompanyID = uuid.New().String()
	_, err = uc.Book(ctx, unknown)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.events.types())
}

func TestBooking_ModuloApagado(t *testing.T) {
	f, uc, serviceID := bookingSetup(t)
	ctx := context.Background()
	c, err := f.repos.Companies.GetByID(ctx, f.acme.companyID)
	require.NoError(t, err)
	m := c.Modules
	m.Set(entity.ModuleBookings, false)
	require.NoError(t, f.repos.Companies.UpdateModules(ctx, c.ID, m))

	_, err = uc.ListServices(ctx, f.acme.companyID)
	assert.ErrorIs(t, err, domain.ErrModuleDisabled)
	_, err = uc.Book(ctx, booking(f, serviceID))
	assert.ErrorIs(t, err, domain.ErrModuleDisabled)
}

func TestBooking_Disponibilidad(t *testing.T) {
	f, uc, _ := bookingSetup(t)
	ctx := context.Background()

	_, err := uc.CreateAvailability(ctx, f.acme.owner(), dto.CreateAvailabilityRequest{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateAvailability(ctx, f.acme.owner(), dto.CreateAvailabilityRequest{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateAvailability(ctx, f.acme.owner(), dto.CreateAvailabilityRequest{
		StaffID: f.globex.ownerID, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a, err := uc.CreateAvailability(ctx, f.acme.owner(), dto.CreateAvailabilityRequest{
		StaffID: f.acme.ownerID, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	list, err := uc.ListAvailability(ctx, f.acme.companyID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
}

func TestBooking_CambioDeEstado(t *testing.T) {
	f, uc, serviceID := bookingSetup(t)
	ctx := context.Background()
	res, err := uc.Book(ctx, booking(f, serviceID))
	require.NoError(t, err)

	_, err = uc.UpdateBookingStatus(ctx, f.globex.owner(), res.ID, entity.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateBookingStatus(ctx, f.acme.owner(), res.ID, "aprobada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	b, err := uc.UpdateBookingStatus(ctx, f.acme.owner(), res.ID, entity.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, b.Status)

	pending, err := uc.ListBookings(ctx, f.acme.owner(), entity.BookingPending, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, pending)
}
