package services

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"github.com/phpdave11/gofpdf"

	"inventario/internal/domain/models"
	"inventario/internal/repositories"
	"inventario/internal/search"
	"inventario/internal/utils"
)

// reportMaxItems acota el tamaño del PDF.
const reportMaxItems = 500

// ReportService genera el reporte PDF del inventario filtrado.
type ReportService struct {
	Items     repositories.InventoryRepository
	RequestID string
}

// Generate acepta la misma gramática de filtros que la búsqueda y devuelve
// el PDF con los items que matchean (hasta reportMaxItems).
func (s ReportService) Generate(params url.Values) ([]byte, string, error) {
	filter, err := search.BuildFilter(params)
	if err != nil {
		return nil, "", err
	}
	sort, err := search.ParseSort(params)
	if err != nil {
		return nil, "", err
	}

	total, err := s.Items.Count(filter)
	if err != nil {
		return nil, "", err
	}
	items, err := s.Items.Search(filter, sort, reportMaxItems, 0)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "report", "generate", fmt.Sprintf("items=%d total=%d", len(items), total))
	return buildInventoryPDF(items, total)
}

func buildInventoryPDF(items []models.InventoryItem, total int) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Reporte de Inventario", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "REPORTE DE INVENTARIO")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generado: %s  |  Items: %d de %d", time.Now().Format("2006-01-02 15:04"), len(items), total))
	pdf.Ln(10)

	headers := []string{"N. Parte", "Descripción", "Serial", "Tipo", "Cliente", "OC", "Status", "Fact.", "Factura", "Creación"}
	widths := []float64{28, 60, 30, 12, 38, 24, 26, 12, 26, 22}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, it := range items {
		facturado := "No"
		if it.Facturado {
			facturado = "Sí"
		}
		cells := []string{
			it.NParte,
			recortar(it.Descripcion, 45),
			it.Serial,
			it.Tipo,
			recortar(it.Cliente, 28),
			it.OC,
			it.Status,
			facturado,
			it.NumeroFactura,
			it.FechaCreacion.Format("2006-01-02"),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(items) < total {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("Nota: el reporte muestra los primeros %d items; ajuste los filtros para acotar el resultado.", len(items)), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVENTARIO_%s.pdf", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func recortar(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
