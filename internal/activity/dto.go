package activity

import (
	internal "github.com/pradiptamal/crm-management/internal"
)

type CreateActivityDTO struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Body       string `json:"body"`
}

func (d CreateActivityDTO) Validate() error {
	if !validEntityType(d.EntityType) {
		return internal.NewValidationFieldError("entity_type", "unknown entity type", internal.ErrCodeValidationFailed)
	}
	if d.EntityID == 0 {
		return internal.NewValidationFieldError("entity_id", "entity_id is required", internal.ErrCodeMissingField)
	}
	if d.Body == "" {
		return internal.NewValidationFieldError("body", "body is required", internal.ErrCodeMissingField)
	}
	return nil
}
