package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

// ReportUseCase reportes de campo y encuestas.
type ReportUseCase struct {
	repos repository.Repositories
	tx    repository.TxRunner
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos repository.Repositories, tx repository.TxRunner) *ReportUseCase {
	return &ReportUseCase{repos: repos, tx: tx}
}

// CreateFieldReport registra un reporte del staff autenticado.
func (uc *ReportUseCase) CreateFieldReport(ctx context.Context, ac authz.Context, in dto.CreateFieldReportRequest) (*dto.CreatedResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.Invalid("title y content son obligatorios")
	}
	photos := make([]string, 0, len(in.Photos))
	for _, p := range in.Photos {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	fr := &entity.FieldReport{
		ID:        uuid.New().String(),
		CompanyID: ac.CompanyID(),
		UserID:    ac.PrincipalID(),
		Title:     title,
		Content:   in.Content,
		Location:  strings.TrimSpace(in.Location),
		Photos:    photos,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repos.FieldReports.Create(ctx, fr); err != nil {
		return nil, err
	}
	return &dto.CreatedResponse{Message: "Field report submitted", ID: fr.ID}, nil
}

// ListFieldReports reportes de la empresa.
func (uc *ReportUseCase) ListFieldReports(ctx context.Context, ac authz.Context, page dto.PageRequest) ([]dto.FieldReportResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.FieldReports.ListByCompany(ctx, ac.CompanyID(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FieldReportResponse, 0, len(list))
	for _, fr := range list {
		out = append(out, dto.FieldReportResponse{
			ID: fr.ID, UserID: fr.UserID, Title: fr.Title, Content: fr.Content,
			Location: fr.Location, Photos: fr.Photos, CreatedAt: fr.CreatedAt,
		})
	}
	return out, nil
}

// CreateSurvey crea la encuesta con sus preguntas en el orden recibido (una sola transacción).
func (uc *ReportUseCase) CreateSurvey(ctx context.Context, ac authz.Context, in dto.CreateSurveyRequest) (*dto.SurveyResponseDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("title es obligatorio")
	}
	if len(in.Questions) == 0 {
		return nil, domain.Invalid("la encuesta necesita al menos una pregunta")
	}
	survey := &entity.Survey{
		ID:          uuid.New().String(),
		CompanyID:   ac.CompanyID(),
		Title:       title,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	for i, q := range in.Questions {
		text := strings.TrimSpace(q.QuestionText)
		if text == "" {
			return nil, domain.Invalid("questions[%d].question_text es obligatorio", i)
		}
		switch q.QuestionType {
		case entity.QuestionText, entity.QuestionRating:
		case entity.QuestionMultipleChoice:
			if len(q.Options) < 2 {
				return nil, domain.Invalid("questions[%d] multiple_choice necesita al menos dos opciones", i)
			}
		default:
			return nil, domain.Invalid("questions[%d].question_type inválido %q", i, q.QuestionType)
		}
		question := entity.SurveyQuestion{
			ID:           uuid.New().String(),
			SurveyID:     survey.ID,
			Position:     i,
			QuestionText: text,
			QuestionType: q.QuestionType,
		}
		if q.QuestionType == entity.QuestionMultipleChoice {
			question.Options = append([]string(nil), q.Options...)
		}
		survey.Questions = append(survey.Questions, question)
	}
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		return r.Surveys.Create(ctx, survey)
	})
	if err != nil {
		return nil, err
	}
	return toSurveyDTO(survey), nil
}

// ListSurveys encuestas activas de una empresa (público).
func (uc *ReportUseCase) ListSurveys(ctx context.Context, companyID string) ([]dto.SurveyResponseDTO, error) {
	company, err := publicCompany(ctx, uc.repos.Companies, companyID, entity.ModuleSurveys)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Surveys.ListActiveByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SurveyResponseDTO, 0, len(list))
	for _, s := range list {
		out = append(out, *toSurveyDTO(s))
	}
	return out, nil
}

// Respond registra una respuesta. client es nil para invitados; con token de cliente el
// client_id sale del principal y la encuesta debe ser de su empresa.
func (uc *ReportUseCase) Respond(ctx context.Context, surveyID string, in dto.SubmitSurveyRequest, client *authz.Context) (*dto.MessageResponse, error) {
	answers := bytes.TrimSpace(in.Answers)
	if len(answers) == 0 || answers[0] != '{' {
		return nil, domain.Invalid("answers debe ser un objeto JSON")
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(answers, &parsed); err != nil || len(parsed) == 0 {
		return nil, domain.Invalid("answers debe ser un objeto JSON no vacío")
	}
	company, err := publicCompany(ctx, uc.repos.Companies, in.CompanyID, entity.ModuleSurveys)
	if err != nil {
		return nil, err
	}
	if !IsID(surveyID) {
		return nil, domain.ErrNotFound
	}
	survey, err := uc.repos.Surveys.GetByCompanyAndID(ctx, company.ID, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil || !survey.IsActive {
		return nil, domain.ErrNotFound
	}
	resp := &entity.SurveyResponse{
		ID:        uuid.New().String(),
		SurveyID:  survey.ID,
		CompanyID: company.ID,
		Answers:   json.RawMessage(answers),
		CreatedAt: time.Now().UTC(),
	}
	if client != nil {
		if !client.IsClient() || client.CompanyID() != company.ID {
			return nil, fmt.Errorf("%w: la encuesta no pertenece a la empresa del cliente", domain.ErrNotFound)
		}
		resp.ClientID = client.PrincipalID()
	}
	if err := uc.repos.SurveyResponses.Create(ctx, resp); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Survey submitted successfully"}, nil
}

// ListResponses respuestas de una encuesta de la empresa.
func (uc *ReportUseCase) ListResponses(ctx context.Context, ac authz.Context, surveyID string) ([]dto.SurveyAnswerResponse, error) {
	if !IsID(surveyID) {
		return nil, domain.ErrNotFound
	}
	survey, err := uc.repos.Surveys.GetByCompanyAndID(ctx, ac.CompanyID(), surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.SurveyResponses.ListBySurvey(ctx, ac.CompanyID(), survey.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SurveyAnswerResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.SurveyAnswerResponse{ID: r.ID, ClientID: r.ClientID, Answers: r.Answers, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

func toSurveyDTO(s *entity.Survey) *dto.SurveyResponseDTO {
	out := &dto.SurveyResponseDTO{ID: s.ID, Title: s.Title, Description: s.Description}
	for _, q := range s.Questions {
		out.Questions = append(out.Questions, dto.SurveyQuestionResponse{
			ID: q.ID, Position: q.Position, QuestionText: q.QuestionText,
			QuestionType: q.QuestionType, Options: q.Options,
		})
	}
	return out
}
