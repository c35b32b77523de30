package schema

import (
	"time"

	"github.com/google/uuid"
)

// ModelBinding maps a country of a forecast run to the project and model
// trained for it on the external modeling service. Only the two id fields
// are ever updated after creation.
type ModelBinding struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RunID     string    `json:"run_id" gorm:"index"`
	Country   string    `json:"country" gorm:"index"`
	ProjectID string    `json:"project_id"`
	ModelID   string    `json:"model_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ModelBinding) TableName() string {
	return "model_bindings"
}

func (b ModelBinding) Trained() bool {
	return b.ProjectID != "" && b.ModelID != ""
}
