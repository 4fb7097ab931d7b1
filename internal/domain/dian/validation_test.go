package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		rec     entity.InvoiceRecord
		wantErr []string
	}{
		{
			name: "fila completa",
			rec: entity.InvoiceRecord{NIT: "900123456", InvoiceNumber: "FE1", PeriodStart: "01/03/2024",
				PeriodEnd: "2024-03-31", LineType: "Servicios"},
		},
		{
			name:    "sin llaves de cruce",
			rec:     entity.InvoiceRecord{PlanCode: "3"},
			wantErr: []string{"sin número de factura ni NIT"},
		},
		{
			name:    "NIT corto",
			rec:     entity.InvoiceRecord{NIT: "123", InvoiceNumber: "FE1"},
			wantErr: []string{"NIT:"},
		},
		{
			name:    "fechas y tipo de ítem",
			rec:     entity.InvoiceRecord{InvoiceNumber: "FE1", PeriodStart: "1/3/24", PeriodEnd: "marzo", LineType: "consulta"},
			wantErr: []string{"fecha de inicio", "fecha final", "tipo de ítem \"consulta\""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dian.ValidateRecord(tt.rec)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, dian.ErrSuspiciousRecord)
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
