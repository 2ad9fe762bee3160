package infra

// pdf.go — daily closing report generation using go-pdf/fpdf.
// Produces an A5 summary sheet the operator archives with the cash count:
//   - lot name header and reference date
//   - per-method totals table (dinheiro, crédito, débito, pix, outros)
//   - bold grand total and transaction count
//   - closing note, when present

import (
	"bytes"
	"fmt"

	"estapark/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GerarFechamentoPDF renders a CaixaFechamento as a printable PDF.
func GerarFechamentoPDF(f *model.CaixaFechamento) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "EstaPark", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Fechamento de Caixa", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, f.DataRef.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Per-method totals ─────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	linha := func(label string, valor decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(col1, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "R$ "+valor.StringFixed(2), "", 1, "R", false, 0, "")
	}

	linha("Dinheiro", f.TotalDinheiro, false)
	linha("Crédito", f.TotalCredito, false)
	linha("Débito", f.TotalDebito, false)
	linha("Pix", f.TotalPix, false)
	if !f.TotalOutros.IsZero() {
		linha("Outros", f.TotalOutros, false)
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "TOTAL RECEBIDO", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, "R$ "+f.TotalRecebido.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Transações: %d", f.TotalTransacoes), "", 1, "L", false, 0, "")

	// ── Note ──────────────────────────────────────────────────────────────────
	if f.Observacao != nil && *f.Observacao != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 5, "Obs: "+*f.Observacao, "", "L", false)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Gerado em "+f.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
