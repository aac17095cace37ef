package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var (
	_ repository.FieldReportRepository    = (*FieldReportRepo)(nil)
	_ repository.SurveyRepository         = (*SurveyRepo)(nil)
	_ repository.SurveyResponseRepository = (*SurveyResponseRepo)(nil)
)

// FieldReportRepo reportes de campo.
type FieldReportRepo struct {
	q Querier
}

// NewFieldReportRepository construye el adaptador.
func NewFieldReportRepository(q Querier) *FieldReportRepo {
	return &FieldReportRepo{q: q}
}

// Create persiste un reporte.
func (r *FieldReportRepo) Create(ctx context.Context, fr *entity.FieldReport) error {
	photos := fr.Photos
	if photos == nil {
		photos = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO field_reports (id, company_id, user_id, title, content, location, photos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fr.ID, fr.CompanyID, fr.UserID, fr.Title, fr.Content, fr.Location, photos, fr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert field report: %w", err)
	}
	return nil
}

// ListByCompany reportes de la empresa, más recientes primero.
func (r *FieldReportRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.FieldReport, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, user_id, title, content, location, photos, created_at
		FROM field_reports WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list field reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.FieldReport
	for rows.Next() {
		var fr entity.FieldReport
		if err := rows.Scan(&fr.ID, &fr.CompanyID, &fr.UserID, &fr.Title, &fr.Content, &fr.Location,
			&fr.Photos, &fr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan field report: %w", err)
		}
		list = append(list, &fr)
	}
	return list, rows.Err()
}

// SurveyRepo encuestas y preguntas.
type SurveyRepo struct {
	q Querier
}

// NewSurveyRepository construye el adaptador.
func NewSurveyRepository(q Querier) *SurveyRepo {
	return &SurveyRepo{q: q}
}

// Create persiste la encuesta y sus preguntas. Debe ejecutarse dentro de una tx.
func (r *SurveyRepo) Create(ctx context.Context, s *entity.Survey) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO surveys (id, company_id, title, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.CompanyID, s.Title, s.Description, s.IsActive, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	for i := range s.Questions {
		q := &s.Questions[i]
		if q.ID == "" {
			q.ID = uuid.New().String()
		}
		q.SurveyID = s.ID
		options := q.Options
		if options == nil {
			options = []string{}
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO survey_questions (id, survey_id, position, question_text, question_type, options)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			q.ID, q.SurveyID, q.Position, q.QuestionText, q.QuestionType, options,
		)
		if err != nil {
			return fmt.Errorf("insert survey question: %w", err)
		}
	}
	return nil
}

// GetByCompanyAndID obtiene la encuesta con sus preguntas ordenadas.
func (r *SurveyRepo) GetByCompanyAndID(ctx context.Context, companyID, id string) (*entity.Survey, error) {
	var s entity.Survey
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, title, description, is_active, created_at
		FROM surveys WHERE company_id = $1 AND id = $2`, companyID, id).Scan(
		&s.ID, &s.CompanyID, &s.Title, &s.Description, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if err := r.loadQuestions(ctx, []*entity.Survey{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveByCompany encuestas activas con sus preguntas.
func (r *SurveyRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Survey, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, title, description, is_active, created_at
		FROM surveys WHERE company_id = $1 AND is_active ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	var list []*entity.Survey
	for rows.Next() {
		var s entity.Survey
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Title, &s.Description, &s.IsActive, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		list = append(list, &s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadQuestions(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SurveyRepo) loadQuestions(ctx context.Context, surveys []*entity.Survey) error {
	if len(surveys) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Survey, len(surveys))
	ids := make([]string, 0, len(surveys))
	for _, s := range surveys {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, survey_id, position, question_text, question_type, options
		FROM survey_questions WHERE survey_id::text = ANY($1) ORDER BY survey_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list survey questions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var q entity.SurveyQuestion
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Position, &q.QuestionText, &q.QuestionType, &q.Options); err != nil {
			return fmt.Errorf("scan survey question: %w", err)
		}
		if s := byID[q.SurveyID]; s != nil {
			s.Questions = append(s.Questions, q)
		}
	}
	return rows.Err()
}

// SurveyResponseRepo respuestas.
type SurveyResponseRepo struct {
	q Querier
}

// NewSurveyResponseRepository construye el adaptador.
func NewSurveyResponseRepository(q Querier) *SurveyResponseRepo {
	return &SurveyResponseRepo{q: q}
}

// Create persiste una respuesta.
func (r *SurveyResponseRepo) Create(ctx context.Context, resp *entity.SurveyResponse) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO survey_responses (id, survey_id, company_id, client_id, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		resp.ID, resp.SurveyID, resp.CompanyID, nullIfEmpty(resp.ClientID), string(resp.Answers), resp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert survey response: %w", err)
	}
	return nil
}

// ListBySurvey respuestas de una encuesta de la empresa.
func (r *SurveyResponseRepo) ListBySurvey(ctx context.Context, companyID, surveyID string) ([]*entity.SurveyResponse, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, survey_id, company_id, client_id, answers, created_at
		FROM survey_responses WHERE company_id = $1 AND survey_id = $2 ORDER BY created_at`,
		companyID, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	defer rows.Close()
	var list []*entity.SurveyResponse
	for rows.Next() {
		var resp entity.SurveyResponse
		var clientID *string
		var answers []byte
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.CompanyID, &clientID, &answers, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}
		resp.ClientID = fromNull(clientID)
		resp.Answers = answers
		list = append(list, &resp)
	}
	return list, rows.Err()
}
