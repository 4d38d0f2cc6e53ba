package handler

import (
	"strings"

	"geomed/internal/prediction/models"
	dErrors "geomed/pkg/domain-errors"
	"geomed/pkg/email"
)

// PredictRequest is the payload for a single prediction.
type PredictRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Hospital string `json:"hospital"`
	Topic    string `json:"pubmed_topic"`
}

func (r *PredictRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Hospital = strings.TrimSpace(r.Hospital)
	r.Topic = strings.TrimSpace(r.Topic)

	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !email.IsValid(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}
	if r.Hospital == "" {
		return dErrors.New(dErrors.CodeValidation, "hospital is required")
	}
	if r.Topic == "" {
		return dErrors.New(dErrors.CodeValidation, "pubmed_topic is required")
	}
	return nil
}

func (r *PredictRequest) Query() models.SubjectQuery {
	return models.SubjectQuery{
		Name:     r.Name,
		Email:    r.Email,
		Hospital: r.Hospital,
		Topic:    r.Topic,
	}
}
