package dto

import "time"

// BatchFileResponse archivo generado dentro de un lote (sin el contenido XML).
type BatchFileResponse struct {
	Sequence      int    `json:"sequence"`
	Filename      string `json:"filename"`
	InputName     string `json:"input_name"`
	Container     bool   `json:"container"`
	InvoiceNumber string `json:"invoice_number"`
	NIT           string `json:"nit"`
	PayableAmount string `json:"payable_amount"`
	Digest        string `json:"digest"`
}

// SkippedResponse entrada que no produjo salida.
type SkippedResponse struct {
	InputName string `json:"input_name"`
	Key       string `json:"key,omitempty"`
	Reason    string `json:"reason"`
}

// RuleMatchResponse coincidencias de una regla de corrección en el lote.
type RuleMatchResponse struct {
	RuleID      string `json:"rule_id"`
	Description string `json:"description,omitempty"`
	Matches     int    `json:"matches"`
}

// BatchResponse resumen de un lote procesado.
type BatchResponse struct {
	ID           string              `json:"id"`
	CreatedBy    string              `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	Inputs       int                 `json:"inputs"`
	Processed    int                 `json:"processed"`
	TotalPayable string              `json:"total_payable"`
	Files        []BatchFileResponse `json:"files"`
	Unmatched    []SkippedResponse   `json:"unmatched"`
	Malformed    []SkippedResponse   `json:"malformed"`
	RuleMatches  []RuleMatchResponse `json:"rule_matches"`
}
