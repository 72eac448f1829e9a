// Package models holds the domain types shared across pipeline stages.
package models

// DocumentKind distinguishes the two report families the pipeline accepts.
type DocumentKind string

const (
	KindStatement    DocumentKind = "estado_cuenta"
	KindBureauReport DocumentKind = "buro_credito"
)

// SourceDocument is one uploaded file queued for analysis. Institution may
// be empty, in which case the parser registry auto-detects it from the
// filename and extracted text.
type SourceDocument struct {
	FileName    string       `json:"file_name"`
	Path        string       `json:"path"`
	Kind        DocumentKind `json:"kind"`
	Institution string       `json:"institution,omitempty"`
}

// ApplicantProfile carries the request-side facts about the applicant that
// the matching stage needs alongside the derived financial profile.
type ApplicantProfile struct {
	ApplicantID     string  `json:"applicant_id"`
	TipoPersona     string  `json:"tipo_persona"` // "fisica" or "moral"
	MontoSolicitado float64 `json:"monto_solicitado"`
	ScoreBuro       int     `json:"score_buro"`
	Region          string  `json:"region,omitempty"`
	Email           string  `json:"email,omitempty"`
}
