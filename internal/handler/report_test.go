package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly?"+rawQuery, nil)
	c.Request = req
	return c
}

func TestMonthRange(t *testing.T) {
	t.Run("explicit month and year", func(t *testing.T) {
		c := testContext(t, "month=2&year=2026")
		start, end, err := monthRange(c)
		require.NoError(t, err)
		assert.Equal(t, 2026, start.Year())
		assert.Equal(t, time.February, start.Month())
		assert.Equal(t, 1, start.Day())
		assert.Equal(t, time.March, end.Month())
	})

	t.Run("defaults to current month", func(t *testing.T) {
		c := testContext(t, "")
		start, end, err := monthRange(c)
		require.NoError(t, err)
		now := time.Now()
		assert.Equal(t, now.Year(), start.Year())
		assert.Equal(t, now.Month(), start.Month())
		assert.True(t, end.After(start))
	})

	t.Run("december rolls into january", func(t *testing.T) {
		c := testContext(t, "month=12&year=2025")
		start, end, err := monthRange(c)
		require.NoError(t, err)
		assert.Equal(t, time.December, start.Month())
		assert.Equal(t, time.January, end.Month())
		assert.Equal(t, 2026, end.Year())
	})

	t.Run("rejects bad month", func(t *testing.T) {
		c := testContext(t, "month=13")
		_, _, err := monthRange(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("rejects bad year", func(t *testing.T) {
		c := testContext(t, "year=abc")
		_, _, err := monthRange(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestReportRows(t *testing.T) {
	billDate := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	payDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	data := &monthlyReportData{
		Bills: []models.Bill{
			{
				BillNo:      "MS-20260402-00001",
				BillDate:    billDate,
				TotalAmount: decimal.NewFromFloat(512.5),
				Distributor: models.Distributor{CompanyName: "Sunrise Dairy"},
			},
		},
		Payments: []models.Payment{
			{
				PaymentDate:   payDate,
				PaymentMethod: "PhonePe",
				Amount:        decimal.NewFromInt(300),
				Distributor:   models.Distributor{CompanyName: "Sunrise Dairy"},
			},
		},
	}

	rows := reportRows(data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Type", "Date", "Distributor", "Reference", "Amount"}, rows[0])
	assert.Equal(t, []string{"BILL", "2026-04-02", "Sunrise Dairy", "MS-20260402-00001", "512.50"}, rows[1])
	assert.Equal(t, []string{"PAYMENT", "2026-04-10", "Sunrise Dairy", "PhonePe", "300.00"}, rows[2])
}
