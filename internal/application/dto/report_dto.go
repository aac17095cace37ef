package dto

import (
	"encoding/json"
	"time"
)

// CreateFieldReportRequest reporte de campo.
type CreateFieldReportRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Content  string   `json:"content" validate:"required"`
	Location string   `json:"location"`
	Photos   []string `json:"photos"`
}

// FieldReportResponse reporte de campo.
type FieldReportResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Location  string    `json:"location,omitempty"`
	Photos    []string  `json:"photos,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SurveyQuestionRequest pregunta en el alta de encuesta; el orden del arreglo es el orden.
type SurveyQuestionRequest struct {
	QuestionText string   `json:"question_text" validate:"required"`
	QuestionType string   `json:"question_type" validate:"required,oneof=text rating multiple_choice"`
	Options      []string `json:"options"`
}

// CreateSurveyRequest alta de encuesta.
type CreateSurveyRequest struct {
	Title       string                  `json:"title" validate:"required,max=255"`
	Description string                  `json:"description"`
	Questions   []SurveyQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// SurveyQuestionResponse pregunta publicada.
type SurveyQuestionResponse struct {
	ID           string   `json:"id"`
	Position     int      `json:"position"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
}

// SurveyResponseDTO encuesta pública.
type SurveyResponseDTO struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Questions   []SurveyQuestionResponse `json:"questions,omitempty"`
}

// SubmitSurveyRequest respuesta a una encuesta. company_id es solo clave de búsqueda.
// El client_id nunca viene del cuerpo: se toma del token de cliente si existe.
type SubmitSurveyRequest struct {
	CompanyID string          `json:"company_id" validate:"required,uuid"`
	Answers   json.RawMessage `json:"answers" validate:"required" swaggertype:"object"`
}

// SurveyAnswerResponse respuesta registrada.
type SurveyAnswerResponse struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id,omitempty"`
	Answers   json.RawMessage `json:"answers" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
}
