package models

import "time"

// CreditBureauReport is the structured form of a credit bureau PDF.
// Sections that could not be located stay empty rather than failing the
// whole report.
type CreditBureauReport struct {
	Nombre          string              `json:"nombre,omitempty"`
	FechaNacimiento string              `json:"fecha_nacimiento,omitempty"`
	Domicilios      []string            `json:"domicilios,omitempty"`
	ResumenCuentas  []AccountSummary    `json:"resumen_cuentas,omitempty"`
	DetalleCreditos []CreditDetailEntry `json:"detalle_creditos,omitempty"`
	Consultas       []BureauInquiry     `json:"consultas,omitempty"`
}

// AccountSummary is one row from the credit summary section. Date fields
// come in pairs: the raw token as printed plus its parsed form, nil when
// the token did not parse.
type AccountSummary struct {
	Otorgante          string     `json:"otorgante"`
	Producto           string     `json:"producto,omitempty"`
	Estatus            string     `json:"estatus,omitempty"`
	UltimoReporte      string     `json:"ultimo_reporte,omitempty"` // raw MON-YY token
	UltimoReporteFecha *time.Time `json:"ultimo_reporte_fecha,omitempty"`
	Saldo              string     `json:"saldo,omitempty"`
	Comportamiento     string     `json:"comportamiento,omitempty"`
}

// CreditDetailEntry is one account from the credit detail section. The MOP
// sequence keeps its raw character codes; placeholder codes are filtered
// later during risk counting, not here.
type CreditDetailEntry struct {
	Otorgante     string     `json:"otorgante"`
	LimiteCred    string     `json:"limite_credito,omitempty"`
	Apertura      string     `json:"apertura,omitempty"` // raw date token as printed
	AperturaFecha *time.Time `json:"apertura_fecha,omitempty"`
	MOPSequence   string     `json:"secuencia_mop,omitempty"`
}

// BureauInquiry is one entry from the inquiries section.
type BureauInquiry struct {
	Institucion   string     `json:"institucion"`
	Fecha         string     `json:"fecha,omitempty"` // raw DD-MON-YYYY token
	FechaConsulta *time.Time `json:"fecha_consulta,omitempty"`
}

// Risk tier labels assigned per account and overall.
const (
	RiskHigh        = "ALTO RIESGO"
	RiskModerate    = "RIESGO MODERADO"
	RiskGood        = "BUEN COMPORTAMIENTO"
	RiskUnavailable = "No disponible"
)

// AccountRisk is the per-account outcome of the risk assessment.
type AccountRisk struct {
	Otorgante     string `json:"otorgante"`
	Nivel         string `json:"nivel"`
	PagosAltos    int    `json:"pagos_alto_riesgo"`
	PagosModerado int    `json:"pagos_riesgo_moderado"`
	PagosBuenos   int    `json:"pagos_buenos"`
}

// RiskAssessment summarizes payment behavior across all detailed accounts.
type RiskAssessment struct {
	NivelGeneral     string        `json:"nivel_general"`
	Cuentas          []AccountRisk `json:"cuentas,omitempty"`
	CuentasMOPRiesgo []string      `json:"cuentas_mop_riesgo,omitempty"`
}
