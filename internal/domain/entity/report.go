package entity

import (
	"encoding/json"
	"time"
)

// FieldReport reporte de campo enviado por un trabajador.
type FieldReport struct {
	ID        string
	CompanyID string
	UserID    string
	Title     string
	Content   string
	Location  string
	Photos    []string
	CreatedAt time.Time
}

// Tipos de pregunta de encuesta.
const (
	QuestionText           = "text"
	QuestionRating         = "rating"
	QuestionMultipleChoice = "multiple_choice"
)

// Survey encuesta; es dueña de sus preguntas ordenadas.
type Survey struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	Questions   []SurveyQuestion
}

// SurveyQuestion pregunta de una encuesta. Position define el orden.
type SurveyQuestion struct {
	ID           string
	SurveyID     string
	Position     int
	QuestionText string
	QuestionType string
	Options      []string
}

// SurveyResponse respuesta; ClientID vacío = anónima.
type SurveyResponse struct {
	ID        string
	SurveyID  string
	CompanyID string
	ClientID  string
	Answers   json.RawMessage
	CreatedAt time.Time
}
