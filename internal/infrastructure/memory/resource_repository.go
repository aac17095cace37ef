package memory

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

type serviceRepo struct{ base }

func (r *serviceRepo) Create(_ context.Context, s *entity.Service) error {
	defer r.lock()()
	r.db().services[s.ID] = *s
	return nil
}

func (r *serviceRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Service, error) {
	defer r.lock()()
	s, ok := r.db().services[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return &s, nil
}

func (r *serviceRepo) ListActiveByCompany(_ context.Context, companyID string) ([]*entity.Service, error) {
	defer r.lock()()
	return collect(r.db().services,
		func(s *entity.Service) bool { return s.CompanyID == companyID && s.IsActive },
		func(a, b *entity.Service) bool { return a.Name < b.Name }), nil
}

type availabilityRepo struct{ base }

func (r *availabilityRepo) Create(_ context.Context, a *entity.Availability) error {
	defer r.lock()()
	r.db().availability[a.ID] = *a
	return nil
}

func (r *availabilityRepo) ListActiveByCompany(_ context.Context, companyID string) ([]*entity.Availability, error) {
	defer r.lock()()
	return collect(r.db().availability,
		func(a *entity.Availability) bool { return a.CompanyID == companyID && a.IsActive },
		func(a, b *entity.Availability) bool {
			if a.DayOfWeek != b.DayOfWeek {
				return a.DayOfWeek < b.DayOfWeek
			}
			return a.StartTime < b.StartTime
		}), nil
}

type bookingRepo struct{ base }

func (r *bookingRepo) Create(_ context.Context, b *entity.Booking) error {
	defer r.lock()()
	r.db().bookings[b.ID] = *b
	return nil
}

func (r *bookingRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Booking, error) {
	defer r.lock()()
	b, ok := r.db().bookings[id]
	if !ok || b.CompanyID != companyID {
		return nil, nil
	}
	return &b, nil
}

func (r *bookingRepo) ListByCompany(_ context.Context, companyID, status string, limit, offset int) ([]*entity.Booking, error) {
	defer r.lock()()
	list := collect(r.db().bookings,
		func(b *entity.Booking) bool {
			return b.CompanyID == companyID && (status == "" || b.Status == status)
		},
		func(a, b *entity.Booking) bool { return a.BookingTime.Before(b.BookingTime) })
	return paginate(list, limit, offset), nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, companyID, id, status string) error {
	defer r.lock()()
	b, ok := r.db().bookings[id]
	if !ok || b.CompanyID != companyID {
		return domain.ErrNotFound
	}
	b.Status = status
	r.db().bookings[id] = b
	return nil
}

func (r *bookingRepo) CountByStatus(_ context.Context, companyID, status string) (int, error) {
	defer r.lock()()
	n := 0
	for _, b := range r.db().bookings {
		if b.CompanyID == companyID && b.Status == status {
			n++
		}
	}
	return n, nil
}

type categoryRepo struct{ base }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.lock()()
	r.db().categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Category, error) {
	defer r.lock()()
	c, ok := r.db().categories[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Category, error) {
	defer r.lock()()
	return collect(r.db().categories,
		func(c *entity.Category) bool { return c.CompanyID == companyID },
		func(a, b *entity.Category) bool { return a.Name < b.Name }), nil
}

type productRepo struct{ base }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	if p.SKU != "" {
		for _, existing := range r.db().products {
			if existing.CompanyID == p.CompanyID && strings.EqualFold(existing.SKU, p.SKU) {
				return domain.ErrDuplicate
			}
		}
	}
	r.db().products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.db().products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate dentro de Run el mutex del store ya serializa la transacción.
func (r *productRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.GetByCompanyAndID(ctx, companyID, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.db().products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	r.db().products[id] = p
	return nil
}

func (r *productRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	list := collect(r.db().products,
		func(p *entity.Product) bool { return p.CompanyID == companyID },
		func(a, b *entity.Product) bool { return a.Name < b.Name })
	return paginate(list, limit, offset), nil
}

type movementRepo struct{ base }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.lock()()
	r.db().movements[m.ID] = *m
	return nil
}

func (r *movementRepo) ListByProduct(_ context.Context, companyID, productID string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	return collect(r.db().movements,
		func(m *entity.StockMovement) bool { return m.CompanyID == companyID && m.ProductID == productID },
		func(a, b *entity.StockMovement) bool {
			if a.CreatedAt.Equal(b.CreatedAt) {
				return a.ID < b.ID
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}), nil
}

type invoiceRepo struct{ base }

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.lock()()
	for _, existing := range r.db().invoices {
		if existing.CompanyID == inv.CompanyID && existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	stored := *inv
	stored.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	for i := range stored.Items {
		stored.Items[i].InvoiceID = inv.ID
	}
	r.db().invoices[inv.ID] = stored
	return nil
}

func (r *invoiceRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	defer r.lock()()
	inv, ok := r.db().invoices[id]
	if !ok || inv.CompanyID != companyID {
		return nil, nil
	}
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &inv, nil
}

func headerOnly(inv *entity.Invoice) *entity.Invoice {
	inv.Items = nil
	return inv
}

func (r *invoiceRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	defer r.lock()()
	list := collect(r.db().invoices,
		func(inv *entity.Invoice) bool { return inv.CompanyID == companyID },
		func(a, b *entity.Invoice) bool { return a.CreatedAt.After(b.CreatedAt) })
	for _, inv := range list {
		headerOnly(inv)
	}
	return paginate(list, limit, offset), nil
}

func (r *invoiceRepo) ListByClient(_ context.Context, companyID, clientID string) ([]*entity.Invoice, error) {
	defer r.lock()()
	list := collect(r.db().invoices,
		func(inv *entity.Invoice) bool { return inv.CompanyID == companyID && inv.ClientID == clientID },
		func(a, b *entity.Invoice) bool { return a.CreatedAt.After(b.CreatedAt) })
	for _, inv := range list {
		headerOnly(inv)
	}
	return list, nil
}

func (r *invoiceRepo) UpdateStatus(_ context.Context, companyID, id, from, to string) error {
	defer r.lock()()
	inv, ok := r.db().invoices[id]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if inv.Status != from {
		return domain.ErrConflict
	}
	inv.Status = to
	r.db().invoices[id] = inv
	return nil
}

func (r *invoiceRepo) Delete(_ context.Context, companyID, id, status string) error {
	defer r.lock()()
	inv, ok := r.db().invoices[id]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if inv.Status != status {
		return domain.ErrConflict
	}
	delete(r.db().invoices, id)
	return nil
}

func (r *invoiceRepo) LastSequence(_ context.Context, companyID string) (int, error) {
	defer r.lock()()
	last := 0
	for _, inv := range r.db().invoices {
		if inv.CompanyID != companyID || !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
			continue
		}
		if n, err := strconv.Atoi(inv.InvoiceNumber[len("INV-"):]); err == nil && n > last {
			last = n
		}
	}
	return last, nil
}

func (r *invoiceRepo) CountUnpaid(_ context.Context, companyID string) (int, error) {
	defer r.lock()()
	n := 0
	for _, inv := range r.db().invoices {
		if inv.CompanyID == companyID && inv.Status != entity.InvoicePaid && inv.Status != entity.InvoiceCancelled {
			n++
		}
	}
	return n, nil
}

type receiptRepo struct{ base }

func (r *receiptRepo) Create(_ context.Context, rc *entity.Receipt) error {
	defer r.lock()()
	r.db().receipts[rc.ID] = *rc
	return nil
}

func (r *receiptRepo) Update(_ context.Context, rc *entity.Receipt) error {
	defer r.lock()()
	existing, ok := r.db().receipts[rc.ID]
	if !ok || existing.CompanyID != rc.CompanyID {
		return domain.ErrNotFound
	}
	r.db().receipts[rc.ID] = *rc
	return nil
}

func (r *receiptRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Receipt, error) {
	defer r.lock()()
	list := collect(r.db().receipts,
		func(rc *entity.Receipt) bool { return rc.CompanyID == companyID },
		func(a, b *entity.Receipt) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(list, limit, offset), nil
}

type fieldReportRepo struct{ base }

func (r *fieldReportRepo) Create(_ context.Context, fr *entity.FieldReport) error {
	defer r.lock()()
	stored := *fr
	stored.Photos = cloneStrings(fr.Photos)
	r.db().fieldReports[fr.ID] = stored
	return nil
}

func (r *fieldReportRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.FieldReport, error) {
	defer r.lock()()
	list := collect(r.db().fieldReports,
		func(fr *entity.FieldReport) bool { return fr.CompanyID == companyID },
		func(a, b *entity.FieldReport) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(list, limit, offset), nil
}

type surveyRepo struct{ base }

func (r *surveyRepo) Create(_ context.Context, s *entity.Survey) error {
	defer r.lock()()
	stored := *s
	stored.Questions = append([]entity.SurveyQuestion(nil), s.Questions...)
	for i := range stored.Questions {
		stored.Questions[i].SurveyID = s.ID
	}
	r.db().surveys[s.ID] = stored
	return nil
}

func (r *surveyRepo) GetByCompanyAndID(_ context.Context, companyID, id string) (*entity.Survey, error) {
	defer r.lock()()
	s, ok := r.db().surveys[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return &s, nil
}

func (r *surveyRepo) ListActiveByCompany(_ context.Context, companyID string) ([]*entity.Survey, error) {
	defer r.lock()()
	return collect(r.db().surveys,
		func(s *entity.Survey) bool { return s.CompanyID == companyID && s.IsActive },
		func(a, b *entity.Survey) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

type surveyResponseRepo struct{ base }

func (r *surveyResponseRepo) Create(_ context.Context, resp *entity.SurveyResponse) error {
	defer r.lock()()
	r.db().surveyResponses[resp.ID] = *resp
	return nil
}

func (r *surveyResponseRepo) ListBySurvey(_ context.Context, companyID, surveyID string) ([]*entity.SurveyResponse, error) {
	defer r.lock()()
	return collect(r.db().surveyResponses,
		func(resp *entity.SurveyResponse) bool { return resp.CompanyID == companyID && resp.SurveyID == surveyID },
		func(a, b *entity.SurveyResponse) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

type platformRepo struct{ base }

func (r *platformRepo) Create(_ context.Context, p *entity.SocialPlatform) error {
	defer r.lock()()
	r.db().platforms[p.ID] = *p
	return nil
}

func (r *platformRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.SocialPlatform, error) {
	defer r.lock()()
	return collect(r.db().platforms,
		func(p *entity.SocialPlatform) bool { return p.CompanyID == companyID },
		func(a, b *entity.SocialPlatform) bool {
			if a.PlatformName != b.PlatformName {
				return a.PlatformName < b.PlatformName
			}
			return a.AccountName < b.AccountName
		}), nil
}

func (r *platformRepo) CountByCompanyAndIDs(_ context.Context, companyID string, ids []string) (int, error) {
	defer r.lock()()
	n := 0
	for _, id := range ids {
		if p, ok := r.db().platforms[id]; ok && p.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type postRepo struct{ base }

func (r *postRepo) Create(_ context.Context, p *entity.SocialPost) error {
	defer r.lock()()
	stored := *p
	stored.MediaURLs = cloneStrings(p.MediaURLs)
	stored.PlatformIDs = cloneStrings(p.PlatformIDs)
	r.db().posts[p.ID] = stored
	return nil
}

func (r *postRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.SocialPost, error) {
	defer r.lock()()
	list := collect(r.db().posts,
		func(p *entity.SocialPost) bool { return p.CompanyID == companyID },
		func(a, b *entity.SocialPost) bool { return a.ScheduledFor.Before(b.ScheduledFor) })
	return paginate(list, limit, offset), nil
}
