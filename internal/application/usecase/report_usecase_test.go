package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/dto"
	"github.com/jhoicas/bizos-api/internal/application/usecase"
	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/entity"
)

func survey() dto.CreateSurveyRequest {
	return dto.CreateSurveyRequest{
		Title: "Satisfacción",
		Questions: []dto.SurveyQuestionRequest{
			{QuestionText: "¿Cómo nos califica?", QuestionType: entity.QuestionRating},
			{QuestionText: "¿Qué servicio usó?", QuestionType: entity.QuestionMultipleChoice, Options: []string{"Masaje", "Facial"}},
			{QuestionText: "Comentarios", QuestionType: entity.QuestionText},
		},
	}
}

func TestReport_ReportesDeCampo(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewReportUseCase(f.repos, f.store)
	ctx := context.Background()

	_, err := uc.CreateFieldReport(ctx, f.acme.owner(), dto.CreateFieldReportRequest{Title: "Visita"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := uc.CreateFieldReport(ctx, f.acme.owner(), dto.CreateFieldReportRequest{
		Title: "Visita", Content: "Equipo revisado", Location: "Sede norte", Photos: []string{"a.jpg", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Field report submitted", res.Message)

	list, err := uc.ListFieldReports(ctx, f.acme.owner(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"a.jpg"}, list[0].Photos)
	assert.Equal(t, f.acme.ownerID, list[0].UserID)

	list, err = uc.ListFieldReports(ctx, f.globex.owner(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReport_EncuestaValidaPreguntas(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewReportUseCase(f.repos, f.store)
	ctx := context.Background()

	_, err := uc.CreateSurvey(ctx, f.acme.owner(), dto.CreateSurveyRequest{Title: "Vacía"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := survey()
	bad.Questions[1].Options = []string{"Solo una"}
	_, err = uc.CreateSurvey(ctx, f.acme.owner(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = survey()
	bad.Questions[0].QuestionType = "slider"
	_, err = uc.CreateSurvey(ctx, f.acme.owner(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := uc.CreateSurvey(ctx, f.acme.owner(), survey())
	require.NoError(t, err)
	require.Len(t, s.Questions, 3)
	for i, q := range s.Questions {
		assert.Equal(t, i, q.Position)
	}
	assert.Nil(t, s.Questions[0].Options)
}

func TestReport_RespuestasPublicas(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewReportUseCase(f.repos, f.store)
	ctx := context.Background()
	s, err := uc.CreateSurvey(ctx, f.acme.owner(), survey())
	require.NoError(t, err)

	_, err = uc.ListSurveys(ctx, f.acme.companyID)
	assert.ErrorIs(t, err, domain.ErrModuleDisabled, "surveys no está activo por defecto")

	f.enable(t, f.acme.companyID, entity.ModuleSurveys)
	f.enable(t, f.globex.companyID, entity.ModuleSurveys)
	surveys, err := uc.ListSurveys(ctx, f.acme.companyID)
	require.NoError(t, err)
	require.Len(t, surveys, 1)

	answers := json.RawMessage(`{"rating":5,"servicio":"Masaje"}`)
	for _, bad := range []string{``, `[]`, `{}`, `"texto"`, `{roto`} {
		_, err = uc.Respond(ctx, s.ID, dto.SubmitSurveyRequest{CompanyID: f.acme.companyID, Answers: json.RawMessage(bad)}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}

	res, err := uc.Respond(ctx, s.ID, dto.SubmitSurveyRequest{CompanyID: f.acme.companyID, Answers: answers}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Survey submitted successfully", res.Message)

	_, err = uc.Respond(ctx, s.ID, dto.SubmitSurveyRequest{CompanyID: f.globex.companyID, Answers: answers}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound, "encuesta de otra empresa")

	ajeno := authz.NewContext(f.client(t, f.globex.companyID, "ajeno@x.com"), authz.KindClient, f.globex.companyID, "")
	_, err = uc.Respond(ctx, s.ID, dto.SubmitSurveyRequest{CompanyID: f.acme.companyID, Answers: answers}, &ajeno)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de otra empresa")

	maria := f.client(t, f.acme.companyID, "maria@x.com")
	mariaCtx := authz.NewContext(maria, authz.KindClient, f.acme.companyID, "")
	_, err = uc.Respond(ctx, s.ID, dto.SubmitSurveyRequest{CompanyID: f.acme.companyID, Answers: answers}, &mariaCtx)
	require.NoError(t, err)

	responses, err := uc.ListResponses(ctx, f.acme.owner(), s.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	clients := []string{responses[0].ClientID, responses[1].ClientID}
	assert.ElementsMatch(t, []string{"", maria}, clients)
	assert.JSONEq(t, string(answers), string(responses[0].Answers))

	_, err = uc.ListResponses(ctx, f.globex.owner(), s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
