package service

import (
	"context"
	"sync"
	"testing"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferToMain_MovesBalanceAndRecordsTransfer(t *testing.T) {
	f := newFixture()
	f.setPool(model.PoolSales, dec("500"))

	resp, err := f.treasurySvc.TransferToMain(context.Background(), "Yönetici", dto.TransferToMainRequest{
		SourcePool: model.PoolSales,
		Amount:     dec("300"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PoolSales, resp.SourcePool)

	assert.Equal(t, "200", f.poolBalance(model.PoolSales).String())
	assert.Equal(t, "300", f.poolBalance(model.PoolMain).String())
	require.Len(t, f.store.transfers, 1)
}

func TestTransferToMain_InsufficientBalanceWritesNothing(t *testing.T) {
	f := newFixture()
	f.setPool(model.PoolPractice, dec("50"))

	_, err := f.treasurySvc.TransferToMain(context.Background(), "Yönetici", dto.TransferToMainRequest{
		SourcePool: model.PoolPractice,
		Amount:     dec("80"),
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, "50", f.poolBalance(model.PoolPractice).String())
	assert.True(t, f.poolBalance(model.PoolMain).IsZero())
	assert.Len(t, f.store.transfers, 0)
}

func TestTransferToMain_RejectsMainAsSourceAndBadAmount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.treasurySvc.TransferToMain(ctx, "Yönetici", dto.TransferToMainRequest{
		SourcePool: model.PoolMain, Amount: dec("10"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.treasurySvc.TransferToMain(ctx, "Yönetici", dto.TransferToMainRequest{
		SourcePool: model.PoolSales, Amount: dec("0"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

// Two concurrent transfers of the full source balance: the row lock serializes
// them, so exactly one wins and the loser gets ErrInsufficientBalance. No
// money is created or lost either way.
func TestTransferToMain_ConcurrentFullBalanceTransfers(t *testing.T) {
	f := newFixture()
	f.setPool(model.PoolIBAN, dec("1000"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.treasurySvc.TransferToMain(context.Background(), "Yönetici", dto.TransferToMainRequest{
				SourcePool: model.PoolIBAN,
				Amount:     dec("1000"),
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrInsufficientBalance):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	assert.True(t, f.poolBalance(model.PoolIBAN).IsZero())
	assert.Equal(t, "1000", f.poolBalance(model.PoolMain).String())
	assert.Len(t, f.store.transfers, 1)
}

func TestResetMainPool_ZeroesBalance(t *testing.T) {
	f := newFixture()
	f.setPool(model.PoolMain, dec("750"))

	require.NoError(t, f.treasurySvc.ResetMainPool(context.Background(), "Yönetici"))
	assert.True(t, f.poolBalance(model.PoolMain).IsZero())
}

func TestPools_FixedOrder(t *testing.T) {
	f := newFixture()
	f.setPool(model.PoolIBAN, dec("5"))

	pools, err := f.treasurySvc.Pools(context.Background())
	require.NoError(t, err)
	require.Len(t, pools, 4)
	assert.Equal(t, model.PoolMain, pools[0].Pool)
	assert.Equal(t, model.PoolSales, pools[1].Pool)
	assert.Equal(t, model.PoolPractice, pools[2].Pool)
	assert.Equal(t, model.PoolIBAN, pools[3].Pool)
	assert.Equal(t, "5", pools[3].Balance.String())
}
