package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

// SalesWorkbook renders the sales report as a spreadsheet with a formatted
// total row at the bottom.
func SalesWorkbook(rep SalesReport) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Sales Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := setRow(f, sheet, 1, "Order Number", "Customer", "Date", "Status", "Total"); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, 1, 5); err != nil {
		return nil, err
	}

	row := 2
	for _, o := range rep.Orders {
		if err := setRow(f, sheet, row, o.OrderNumber, o.CustomerName, o.OrderDate.Format("2006-01-02"), string(o.Status), o.TotalAmount); err != nil {
			return nil, err
		}
		row++
	}

	if err := setRow(f, sheet, row, "Total", "", "", fmt.Sprintf("%d orders", rep.Count), printer.Sprintf("%.2f", rep.TotalSales)); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, row, 5); err != nil {
		return nil, err
	}
	return f, nil
}

// PurchaseWorkbook renders the purchase report as a spreadsheet.
func PurchaseWorkbook(rep PurchaseReport) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Purchase Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := setRow(f, sheet, 1, "Order Number", "Supplier", "Date", "Status", "Total"); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, 1, 5); err != nil {
		return nil, err
	}

	row := 2
	for _, o := range rep.Orders {
		if err := setRow(f, sheet, row, o.OrderNumber, o.SupplierName, o.OrderDate.Format("2006-01-02"), string(o.Status), o.TotalAmount); err != nil {
			return nil, err
		}
		row++
	}

	if err := setRow(f, sheet, row, "Total", "", "", fmt.Sprintf("%d orders", rep.Count), printer.Sprintf("%.2f", rep.TotalPurchases)); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, row, 5); err != nil {
		return nil, err
	}
	return f, nil
}

// PaymentsWorkbook renders the customer payments report as a spreadsheet.
func PaymentsWorkbook(rep PaymentReport) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Customer Payments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := setRow(f, sheet, 1, "Payment Number", "Customer", "Date", "Mode", "Amount"); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, 1, 5); err != nil {
		return nil, err
	}

	row := 2
	for _, p := range rep.Payments {
		if err := setRow(f, sheet, row, p.PaymentNumber, p.CounterpartyName, p.PaymentDate.Format("2006-01-02"), string(p.Mode), p.Amount); err != nil {
			return nil, err
		}
		row++
	}

	if err := setRow(f, sheet, row, "Total", "", "", fmt.Sprintf("%d payments", rep.Count), printer.Sprintf("%.2f", rep.TotalPayments)); err != nil {
		return nil, err
	}
	if err := boldRow(f, sheet, row, 5); err != nil {
		return nil, err
	}
	return f, nil
}
