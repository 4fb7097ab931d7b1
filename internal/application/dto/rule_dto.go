package dto

import "time"

// CreateRuleRequest entrada para crear una regla de corrección.
// Enabled nil se toma como true.
type CreateRuleRequest struct {
	SearchText  string `json:"search_text" yaml:"search"`
	ReplaceText string `json:"replace_text" yaml:"replace"`
	Description string `json:"description" yaml:"description"`
	Enabled     *bool  `json:"enabled,omitempty" yaml:"enabled"`
}

// UpdateRuleRequest actualización parcial; sólo se aplican los campos presentes.
type UpdateRuleRequest struct {
	SearchText  *string `json:"search_text,omitempty"`
	ReplaceText *string `json:"replace_text,omitempty"`
	Description *string `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

// RuleResponse regla persistida.
type RuleResponse struct {
	ID          string    `json:"id"`
	SearchText  string    `json:"search_text"`
	ReplaceText string    `json:"replace_text"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	Active      bool      `json:"active"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
