package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders a rental agreement form.
func (g *Generator) Generate(doc model.AgreementDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Container Rental Agreement", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Agreement %s", doc.Agreement.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Valid from %s %s", formatDate(doc.Agreement.ValidFrom), validToLabel(doc.Agreement.ValidTo)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addCustomerBlock(pdf, g.fontName, doc.Customer)
	pdf.Ln(2)
	if doc.Container != nil {
		addContainerBlock(pdf, g.fontName, *doc.Container)
		pdf.Ln(2)
	}

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Terms", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Waste type", "Repetition", "Status"}
	colWidths := []float64{70, 55, 55}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	drawTableRow(pdf, g.fontName, []string{
		string(doc.Agreement.Type),
		string(doc.Agreement.Repetition),
		string(doc.Agreement.Status),
	}, colWidths, false)

	if strings.TrimSpace(doc.Agreement.Comment) != "" {
		pdf.Ln(2)
		pdf.SetFont(g.fontName, "B", 11)
		pdf.CellFormat(0, 6, "Comment", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, doc.Agreement.Comment, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)

	signatureBlock(pdf, g.fontName, "Provider")
	signatureBlock(pdf, g.fontName, "Customer")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addCustomerBlock(pdf *gofpdf.Fpdf, fontName string, customer model.Customer) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		customer.Name,
		fmt.Sprintf("Type: %s", customer.Type),
		fmt.Sprintf("Address: %s", safeValue(fullAddress(customer))),
		fmt.Sprintf("Phone: %s", safeValue(customer.Phone)),
		fmt.Sprintf("Email: %s", safeValue(customer.Email)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func addContainerBlock(pdf *gofpdf.Fpdf, fontName string, container model.Container) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Container", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		safeValue(container.Name),
		fmt.Sprintf("RFID: %s", safeValue(container.RFID)),
		fmt.Sprintf("Capacity: %.2f m3", container.CapacityM3),
		fmt.Sprintf("Available from: %s", formatDate(container.AvailableAt)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, fontName, label string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s: ______________________  Date: ____________", label), "", 1, "L", false, 0, "")
}

func fullAddress(customer model.Customer) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{customer.Address, customer.PostalCode, customer.City} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func validToLabel(validTo *time.Time) string {
	if validTo == nil {
		return "(open-ended)"
	}
	return fmt.Sprintf("until %s", formatDate(*validTo))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
