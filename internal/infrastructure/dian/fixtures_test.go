package dian_test

import (
	"fmt"
	"strings"
	"sync"
)

const invoiceTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2" xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2" xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2" xmlns:ext="urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2">
  <ext:UBLExtensions>
    <ext:UBLExtension>
      <ext:ExtensionContent>
        <CustomTagGeneral>
          <Interoperabilidad>
            <Group schemeName="Sector Salud">
              <Collection schemeName="Usuario">
                <AdditionalInformation><Name>COBERTURA_PLAN_BENEFICIOS</Name><Value schemeID="01" schemeName="salud_cobertura.gc">Plan de beneficios</Value></AdditionalInformation>
                <AdditionalInformation><Name>Fecha de inicio del periodo de facturación</Name><Value>%s</Value></AdditionalInformation>
                <AdditionalInformation><Name>Fecha final del periodo de facturación</Name><Value>%s</Value></AdditionalInformation>
              </Collection>
              <Collection schemeName="Usuario">
                <AdditionalInformation><Name>COBERTURA_PLAN_BENEFICIOS</Name><Value schemeID="01">Plan de beneficios</Value></AdditionalInformation>
              </Collection>
            </Group>
          </Interoperabilidad>
        </CustomTagGeneral>
      </ext:ExtensionContent>
    </ext:UBLExtension>
  </ext:UBLExtensions>
  <cbc:UBLVersionID>UBL 2.1</cbc:UBLVersionID>
  <cbc:CustomizationID>%s</cbc:CustomizationID>
  <cbc:ProfileID>DIAN 2.1: Factura Electrónica de Venta</cbc:ProfileID>
  <cbc:ID>%s</cbc:ID>
  <cac:InvoicePeriod>
    <cbc:StartDate>2024-02-01</cbc:StartDate>
    <cbc:EndDate>2024-02-29</cbc:EndDate>
  </cac:InvoicePeriod>
  <cac:AccountingSupplierParty>
    <cac:Party><cac:PartyTaxScheme><cbc:CompanyID schemeID="8">900123456</cbc:CompanyID></cac:PartyTaxScheme></cac:Party>
  </cac:AccountingSupplierParty>
  <cac:LegalMonetaryTotal>
    <cbc:PayableAmount currencyID="COP">150000.50</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
</Invoice>`

// invoiceXML factura de salud con CustomizationID e ID dados y fechas del
// sector salud en AdditionalInformation.
func invoiceXML(customization, id, healthStart, healthEnd string) string {
	return fmt.Sprintf(invoiceTemplate, healthStart, healthEnd, customization, id)
}

// containerXML envuelve una factura en un AttachedDocument. Con cdata=false el
// XML embebido va escapado como texto.
func containerXML(inner string, cdata bool) string {
	payload := "<![CDATA[" + inner + "]]>"
	if !cdata {
		r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
		payload = r.Replace(inner)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<AttachedDocument xmlns="urn:oasis:names:specification:ubl:schema:xsd:AttachedDocument-2" xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2" xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>AD-77</cbc:ID>
  <cac:Attachment>
    <cac:ExternalReference>
      <cbc:MimeCode>text/xml</cbc:MimeCode>
      <cbc:Description>` + payload + `</cbc:Description>
    </cac:ExternalReference>
  </cac:Attachment>
</AttachedDocument>`
}

// recorder observador que guarda los eventos para las aserciones.
type recorder struct {
	mu       sync.Mutex
	skips    []string
	applied  []string
	warnings []string
}

func (r *recorder) OnSkip(input, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips = append(r.skips, input+": "+reason)
}

func (r *recorder) OnRuleApplied(input, rule, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, rule+": "+detail)
}

func (r *recorder) OnWarning(input, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, message)
}

func (r *recorder) warned(substr string) bool {
	for _, w := range r.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
