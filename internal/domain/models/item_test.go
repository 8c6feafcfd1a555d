package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario/internal/domain"
)

func validItem() InventoryItem {
	return InventoryItem{
		NParte:      "ab-123",
		Descripcion: "  Router de borde  ",
		Serial:      " sn-001 ",
		Tipo:        "hw",
		Cliente:     " ACME ",
		OC:          "oc-9",
	}
}

func TestNormalizeUppercaseAndTrim(t *testing.T) {
	it := validItem()
	it.NumeroFactura = " f-77 "
	it.Normalize()

	assert.Equal(t, "AB-123", it.NParte)
	assert.Equal(t, "Router de borde", it.Descripcion)
	assert.Equal(t, "SN-001", it.Serial)
	assert.Equal(t, "HW", it.Tipo)
	assert.Equal(t, "ACME", it.Cliente)
	assert.Equal(t, "OC-9", it.OC)
	assert.Equal(t, "F-77", it.NumeroFactura)
}

func TestValidateNewMissingFields(t *testing.T) {
	it := InventoryItem{Tipo: "HW"}
	it.Normalize()

	err := it.ValidateNew()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "Faltan campos obligatorios")
}

func TestValidateNewBadTipo(t *testing.T) {
	it := validItem()
	it.Tipo = "FW"
	it.Normalize()

	err := it.ValidateNew()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestValidateNewDefaultStatus(t *testing.T) {
	it := validItem()
	it.Normalize()

	require.NoError(t, it.ValidateNew())
	assert.Equal(t, StatusPorDefecto, it.Status)
}

func TestValidateNewBadStatus(t *testing.T) {
	it := validItem()
	it.Status = "Perdido"
	it.Normalize()

	err := it.ValidateNew()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestFacturaCondicional(t *testing.T) {
	it := validItem()
	it.Facturado = true
	it.Normalize()

	err := it.ValidateNew()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	it.NumeroFactura = "F-100"
	require.NoError(t, it.ValidateNew())

	// facturado=false no exige número de factura
	it.Facturado = false
	it.NumeroFactura = ""
	require.NoError(t, it.ValidateFactura())
}
