package service

import (
	"context"
	"testing"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSale_WithDeposit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.saleSvc.RecordSale(ctx, "Yönetici", dto.RecordSaleRequest{
		CustomerName: "Ayşe",
		ProductName:  "Kitap",
		SalePrice:    dec("100"),
		CashDeposit:  dec("30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", resp.CustomerName)

	// exactly one sale row, one confirmed cash payment, customer created
	require.Len(t, f.store.sales, 1)
	require.Len(t, f.store.payments, 1)
	assert.True(t, f.store.customers["Ayşe"])

	p := f.store.payments[0]
	assert.Equal(t, model.PaymentCash, p.PaymentType)
	assert.True(t, p.IsConfirmed)
	require.NotNil(t, p.PaidFor)
	assert.Equal(t, model.PaidForSales, *p.PaidFor)
	assert.Equal(t, "30", p.Amount.String())

	assert.Equal(t, "30", f.poolBalance(model.PoolSales).String())
}

func TestRecordSale_NoDepositTouchesNoPool(t *testing.T) {
	f := newFixture()

	_, err := f.saleSvc.RecordSale(context.Background(), "Yönetici", dto.RecordSaleRequest{
		CustomerName: "Mehmet",
		ProductName:  "Defter",
		SalePrice:    dec("45"),
	})
	require.NoError(t, err)

	assert.Len(t, f.store.payments, 0)
	assert.True(t, f.poolBalance(model.PoolSales).IsZero())
}

func TestRecordSale_RollbackOnPaymentFailure(t *testing.T) {
	f := newFixture()
	f.payments.failCreate = true

	_, err := f.saleSvc.RecordSale(context.Background(), "Yönetici", dto.RecordSaleRequest{
		CustomerName: "Ayşe",
		ProductName:  "Kitap",
		SalePrice:    dec("100"),
		CashDeposit:  dec("30"),
	})
	require.Error(t, err)

	// nothing applied: no sale row, no customer, pool untouched
	assert.Len(t, f.store.sales, 0)
	assert.False(t, f.store.customers["Ayşe"])
	assert.True(t, f.poolBalance(model.PoolSales).IsZero())
}

func TestRecordSale_RejectsBadInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.saleSvc.RecordSale(ctx, "Yönetici", dto.RecordSaleRequest{
		CustomerName: "  ",
		ProductName:  "Kitap",
		SalePrice:    dec("10"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.saleSvc.RecordSale(ctx, "Yönetici", dto.RecordSaleRequest{
		CustomerName: "Ayşe",
		ProductName:  "Kitap",
		SalePrice:    dec("0"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.saleSvc.RecordSale(ctx, "Yönetici", dto.RecordSaleRequest{
		CustomerName: "Ayşe",
		ProductName:  "Kitap",
		SalePrice:    dec("10"),
		CashDeposit:  dec("-5"),
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, f.store.sales, 0)
}

func TestRecordSale_FirstWriterWinsOnCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.saleSvc.RecordSale(ctx, "Yönetici", dto.RecordSaleRequest{
			CustomerName: "Ayşe",
			ProductName:  "Kitap",
			SalePrice:    dec("10"),
		})
		require.NoError(t, err)
	}

	// two sale rows, a single canonical customer
	assert.Len(t, f.store.sales, 2)
	assert.Len(t, f.store.customers, 1)
}
