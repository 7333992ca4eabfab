package service

import (
	"testing"

	"isletmeapp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDebts_CountsAllStreamsAndUnconfirmedPayments(t *testing.T) {
	adjustment := model.PaidForAdjustment
	sales := []model.Sale{
		{CustomerName: "Ayşe", SalePrice: dec("100")},
	}
	practice := []model.PracticePayment{
		{AttendeeName: "Ayşe", Amount: dec("50"), FeeType: model.FeeStandard},
	}
	payments := []model.CustomerPayment{
		{CustomerName: "Ayşe", Amount: dec("30"), PaymentType: model.PaymentCash, IsConfirmed: true},
		// unconfirmed bank transfer still reduces the debt shown
		{CustomerName: "Mehmet", Amount: dec("40"), PaymentType: model.PaymentBank, IsConfirmed: false},
		{CustomerName: "Zeynep", Amount: dec("-10"), PaymentType: model.PaymentAdjustment, IsConfirmed: true, PaidFor: &adjustment},
	}

	entries := ComputeDebts([]string{"Ayşe", "Mehmet", "Zeynep"}, sales, practice, payments)

	require.Len(t, entries, 3)
	byName := make(map[string]string)
	for _, e := range entries {
		byName[e.CustomerName] = e.TotalDebt.String()
	}
	assert.Equal(t, "120", byName["Ayşe"])  // 100 + 50 - 30
	assert.Equal(t, "-40", byName["Mehmet"]) // credited before confirmation
	assert.Equal(t, "10", byName["Zeynep"])  // negative adjustment adds debt
}

func TestComputeDebts_SortedByDebtDescThenName(t *testing.T) {
	sales := []model.Sale{
		{CustomerName: "B", SalePrice: dec("10")},
		{CustomerName: "A", SalePrice: dec("10")},
		{CustomerName: "C", SalePrice: dec("25")},
	}

	entries := ComputeDebts([]string{"A", "B", "C"}, sales, nil, nil)

	require.Len(t, entries, 3)
	assert.Equal(t, "C", entries[0].CustomerName)
	// equal debts tie-break on name
	assert.Equal(t, "A", entries[1].CustomerName)
	assert.Equal(t, "B", entries[2].CustomerName)
}

func TestComputeDebts_Idempotent(t *testing.T) {
	sales := []model.Sale{{CustomerName: "Ali", SalePrice: dec("75.50")}}
	payments := []model.CustomerPayment{{CustomerName: "Ali", Amount: dec("25.50"), PaymentType: model.PaymentCash, IsConfirmed: true}}

	first := ComputeDebts([]string{"Ali"}, sales, nil, payments)
	second := ComputeDebts([]string{"Ali"}, sales, nil, payments)

	assert.Equal(t, first, second)
}

func TestComputeDebts_CustomerWithoutRowsAppearsAtZero(t *testing.T) {
	entries := ComputeDebts([]string{"Yeni Müşteri"}, nil, nil, nil)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].TotalDebt.IsZero())
}
