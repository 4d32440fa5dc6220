package infra

// pdf.go — warranty certificate generation using go-pdf/fpdf.
// A5 landscape certificate with the service center name, customer and bike
// details, the warranty window and the terms text.
// The output file is saved to storagePath/warranty_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"veloservice/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateWarrantyPDF renders the certificate for a repair warranty and
// returns the absolute path of the generated file.
func GenerateWarrantyPDF(w *model.RepairWarranty, centerName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("warranty_%d.pdf", w.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Repair Warranty Certificate", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, centerName, "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW*0.35, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW*0.65, 7, value, "", 1, "L", false, 0, "")
	}

	row("Certificate No:", fmt.Sprintf("%06d", w.ID))
	row("Customer:", w.CustomerName)
	row("Bicycle:", w.BikeManufacturer+" "+w.BikeModel)
	row("Valid from:", w.StartDate.Format("02.01.2006"))
	row("Valid until:", w.EndDate.Format("02.01.2006"))

	if w.Terms != nil && *w.Terms != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Terms:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, *w.Terms, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "This certificate is issued electronically and is valid without a signature.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
