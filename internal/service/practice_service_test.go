package service

import (
	"context"
	"testing"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPractice_PricesFromScheduleAtCommitTime(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.fees.Update(ctx, dec("40"), dec("25")))

	resp, err := f.practiceSvc.RecordPracticePayment(ctx, "Sorumlu", dto.RecordPracticePaymentRequest{
		AttendeeName: "Ali",
		FeeType:      model.FeeStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "25", resp.Amount.String())

	// a later fee change leaves the committed row alone
	require.NoError(t, f.fees.Update(ctx, dec("40"), dec("35")))
	require.Len(t, f.store.practice, 1)
	assert.Equal(t, "25", f.store.practice[0].Amount.String())

	resp2, err := f.practiceSvc.RecordPracticePayment(ctx, "Sorumlu", dto.RecordPracticePaymentRequest{
		AttendeeName: "Ali",
		FeeType:      model.FeeStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "35", resp2.Amount.String())
}

func TestRecordPractice_DepositGoesToPracticePool(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.fees.Update(ctx, dec("40"), dec("25")))

	_, err := f.practiceSvc.RecordPracticePayment(ctx, "Sorumlu", dto.RecordPracticePaymentRequest{
		AttendeeName: "Ali",
		FeeType:      model.FeeStandard,
		CashDeposit:  dec("40"),
	})
	require.NoError(t, err)

	assert.Equal(t, "40", f.poolBalance(model.PoolPractice).String())
	require.Len(t, f.store.payments, 1)
	p := f.store.payments[0]
	assert.True(t, p.IsConfirmed)
	require.NotNil(t, p.PaidFor)
	assert.Equal(t, model.PaidForPractice, *p.PaidFor)
	assert.True(t, f.store.customers["Ali"])
}

func TestRecordPractice_RejectsUnsetFee(t *testing.T) {
	f := newFixture()

	// schedule still at zero
	_, err := f.practiceSvc.RecordPracticePayment(context.Background(), "Sorumlu", dto.RecordPracticePaymentRequest{
		AttendeeName: "Ali",
		FeeType:      model.FeeStandard,
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, f.store.practice, 0)
	assert.False(t, f.store.customers["Ali"])
}

func TestRecordPractice_RejectsUnknownFeeType(t *testing.T) {
	f := newFixture()

	_, err := f.practiceSvc.RecordPracticePayment(context.Background(), "Sorumlu", dto.RecordPracticePaymentRequest{
		AttendeeName: "Ali",
		FeeType:      "vip",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLedgerScenario_DebtAcrossAllStreams(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.fees.Update(ctx, dec("50"), dec("25")))

	// Ayşe buys a 100 TL item, attends a 50 TL session, pays 30 in cash
	_, err := f.saleSvc.RecordSale(ctx, "Yönetici", dto.RecordSaleRequest{
		CustomerName: "Ayşe", ProductName: "Kitap", SalePrice: dec("100"),
	})
	require.NoError(t, err)
	_, err = f.practiceSvc.RecordPracticePayment(ctx, "Yönetici", dto.RecordPracticePaymentRequest{
		AttendeeName: "Ayşe", FeeType: model.FeeStandard,
	})
	require.NoError(t, err)
	_, err = f.paymentSvc.RecordCustomerPayment(ctx, "Yönetici", dto.RecordCustomerPaymentRequest{
		CustomerName: "Ayşe", Amount: dec("30"), PaymentType: model.PaymentCash,
	})
	require.NoError(t, err)

	names, err := f.cust.ListNames(ctx)
	require.NoError(t, err)
	entries := ComputeDebts(names, f.store.sales, f.store.practice, f.store.payments)
	require.Len(t, entries, 1)
	assert.Equal(t, "120", entries[0].TotalDebt.String())
}
