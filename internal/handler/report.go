package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportHandler struct{}

type monthlyReportData struct {
	Bills    []models.Bill
	Payments []models.Payment
}

// monthRange resolves ?month=&year= into [start, end). Defaults to the
// current month.
func monthRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			return time.Time{}, time.Time{}, apperr.NewValidationError("month must be between 1 and 12")
		}
		month = parsed
	}
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 {
			return time.Time{}, time.Time{}, apperr.NewValidationError("year is invalid")
		}
		year = parsed
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0), nil
}

func loadMonthlyReport(c *gin.Context) (*monthlyReportData, error) {
	start, end, err := monthRange(c)
	if err != nil {
		return nil, err
	}

	billQuery := database.DB.Preload("Distributor").Preload("Items").
		Where("status = ? AND bill_date >= ? AND bill_date < ?", models.BillStatusActive, start, end)
	paymentQuery := database.DB.Preload("Distributor").
		Where("status = ? AND payment_date >= ? AND payment_date < ?", models.PaymentStatusActive, start, end)

	if distributorID := c.Query("distributor_id"); distributorID != "" {
		billQuery = billQuery.Where("distributor_id = ?", distributorID)
		paymentQuery = paymentQuery.Where("distributor_id = ?", distributorID)
	}

	data := &monthlyReportData{}
	if err := billQuery.Order("bill_date asc").Find(&data.Bills).Error; err != nil {
		return nil, err
	}
	if err := paymentQuery.Order("payment_date asc").Find(&data.Payments).Error; err != nil {
		return nil, err
	}
	return data, nil
}

func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	data, err := loadMonthlyReport(c)
	if err != nil {
		respondError(c, "report", "MonthlyReport", err)
		return
	}

	totalBilled := decimal.Zero
	damagedCount := 0
	for _, bill := range data.Bills {
		totalBilled = totalBilled.Add(bill.TotalAmount)

		var n int64
		database.DB.Model(&models.DamagedProduct{}).Where("order_id = ?", bill.OrderID).Count(&n)
		if n > 0 {
			damagedCount++
		}
	}

	totalPaid := decimal.Zero
	for _, payment := range data.Payments {
		totalPaid = totalPaid.Add(payment.Amount)
	}

	c.JSON(http.StatusOK, gin.H{
		"bills":    data.Bills,
		"payments": data.Payments,
		"summary": gin.H{
			"total_billed":      totalBilled,
			"total_paid":        totalPaid,
			"bill_count":        len(data.Bills),
			"payment_count":     len(data.Payments),
			"bills_with_damage": damagedCount,
		},
	})
}

// reportRows flattens bills and payments into export rows shared by both
// formats.
func reportRows(data *monthlyReportData) [][]string {
	rows := [][]string{{"Type", "Date", "Distributor", "Reference", "Amount"}}
	for _, bill := range data.Bills {
		rows = append(rows, []string{
			"BILL",
			bill.BillDate.Format("2006-01-02"),
			bill.Distributor.CompanyName,
			bill.BillNo,
			bill.TotalAmount.StringFixed(2),
		})
	}
	for _, payment := range data.Payments {
		rows = append(rows, []string{
			"PAYMENT",
			payment.PaymentDate.Format("2006-01-02"),
			payment.Distributor.CompanyName,
			payment.PaymentMethod,
			payment.Amount.StringFixed(2),
		})
	}
	return rows
}

func (h *ReportHandler) ExportMonthlyReport(c *gin.Context) {
	data, err := loadMonthlyReport(c)
	if err != nil {
		respondError(c, "report", "ExportMonthlyReport", err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=monthly-report.csv")
		writer := csv.NewWriter(c.Writer)
		for _, row := range reportRows(data) {
			if err := writer.Write(row); err != nil {
				respondError(c, "report", "ExportMonthlyReport", err)
				return
			}
		}
		writer.Flush()

	case "xlsx":
		f := excelize.NewFile()
		sheet := "Sheet1"
		for i, row := range reportRows(data) {
			for j, value := range row {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
				f.SetCellValue(sheet, cell, value)
			}
		}
		// Amounts go in as numbers so spreadsheet sums work.
		for i, row := range reportRows(data) {
			if i == 0 {
				continue
			}
			if amount, err := strconv.ParseFloat(row[4], 64); err == nil {
				cell, _ := excelize.CoordinatesToCellName(5, i+1)
				f.SetCellValue(sheet, cell, amount)
			}
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=monthly-report.xlsx")
		if err := f.Write(c.Writer); err != nil {
			respondError(c, "report", "ExportMonthlyReport", fmt.Errorf("failed to write xlsx: %w", err))
			return
		}

	default:
		respondError(c, "report", "ExportMonthlyReport", apperr.NewValidationError("format must be csv or xlsx"))
	}
}
