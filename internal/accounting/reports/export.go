package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

func formatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return amountPrinter.Sprintf("%.2f", f)
}

// BuildTrialBalanceXLSX renders the trial balance as an XLSX workbook.
func BuildTrialBalanceXLSX(tb TrialBalance, periodLabel string) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Trial Balance"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Trial Balance")
	_ = f.SetCellValue(sheet, "A2", periodLabel)

	headers := []string{"Code", "Account", "Type", "Total Debit", "Total Credit", "Debit Balance", "Credit Balance"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for i, row := range tb.Rows {
		r := i + 5
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Code)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Type)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), formatAmount(row.TotalDebit))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), formatAmount(row.TotalCredit))
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", r), formatAmount(row.DebitBalance))
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", r), formatAmount(row.CreditBalance))
	}

	totalRow := len(tb.Rows) + 6
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), "Totals")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), formatAmount(tb.TotalDebit))
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), formatAmount(tb.TotalCredit))
	_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), formatAmount(tb.TotalDebitBalance))
	_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), formatAmount(tb.TotalCreditBalance))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAccountStatementPDF renders the running-balance statement as a PDF.
func BuildAccountStatementPDF(st AccountStatement, periodLabel string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Account Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Account: %s %s (%s)", st.Code, st.Name, st.Type))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", periodLabel))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Opening Balance: %s", formatAmount(st.OpeningBalance)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(22, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "Entry", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "Debit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "Credit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Balance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range st.Lines {
		pdf.CellFormat(22, 6, line.EntryDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, line.EntryNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(26, 6, formatAmount(line.Debit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, formatAmount(line.Credit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, formatAmount(line.RunningBalance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(134, 6, "Closing Balance", "1", 0, "R", false, 0, "")
	pdf.CellFormat(56, 6, formatAmount(st.ClosingBalance), "1", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
