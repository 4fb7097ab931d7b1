// Package dian contiene catálogos y utilidades alineados al Anexo Técnico
// de Factura Electrónica de Venta DIAN (Colombia) y a la extensión del sector salud.
package dian

// =============================================================================
// Nombres locales UBL 2.1 usados por el corrector.
// Se comparan sin prefijo: los XML de distintos proveedores tecnológicos no
// usan los mismos prefijos para los mismos namespaces.
// =============================================================================

const (
	ElemAttachedDocument            = "AttachedDocument"
	ElemAttachment                  = "Attachment"
	ElemExternalReference           = "ExternalReference"
	ElemDescription                 = "Description"
	ElemCustomizationID             = "CustomizationID"
	ElemProfileID                   = "ProfileID"
	ElemID                          = "ID"
	ElemAdditionalDocumentReference = "AdditionalDocumentReference"
	ElemInvoicePeriod               = "InvoicePeriod"
	ElemStartDate                   = "StartDate"
	ElemEndDate                     = "EndDate"
	ElemAdditionalInformation       = "AdditionalInformation"
	ElemName                        = "Name"
	ElemValue                       = "Value"
	ElemAccountingSupplierParty     = "AccountingSupplierParty"
	ElemCompanyID                   = "CompanyID"
	ElemLegalMonetaryTotal          = "LegalMonetaryTotal"
	ElemPayableAmount               = "PayableAmount"

	AttrSchemeID = "schemeID"
)

// Namespaces UBL 2.1 de los elementos que el corrector crea.
const (
	NsCac = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// =============================================================================
// Sector salud (Resolución 000506 de 2021 / 2275 de 2023) - campos adicionales
// =============================================================================

const (
	// ContingencyMarkerDefault es el CustomizationID canónico del sector salud.
	ContingencyMarkerDefault = "SS-CUFE"
	// ContingencyCode es el código de operación / referencia de contingencia.
	ContingencyCode = "11"
	// PlanBenefitsMarker identifica el AdditionalInformation del plan de beneficios.
	PlanBenefitsMarker = "COBERTURA_PLAN_BENEFICIOS"
)

// Etiquetas (Name) de las fechas del periodo de facturación en AdditionalInformation.
// La forma larga contiene a la corta; se conservan ambas porque los proveedores
// usan una u otra.
var (
	PeriodStartLabels = []string{"Fecha de inicio del periodo de facturación", "Fecha de inicio"}
	PeriodEndLabels   = []string{"Fecha final del periodo de facturación", "Fecha final"}
)

// XMLDeclaration declaración con la que deben comenzar todos los XML de salida.
const XMLDeclaration = `<?xml version="1.0" encoding="utf-8"?>`
