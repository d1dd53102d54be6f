package game

import (
	"math"
	"testing"
	"time"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCfg struct{}

func (stubCfg) BetThresholds() []float64                { return nil }
func (stubCfg) WhaleMultiplier() float64                { return 10 }
func (stubCfg) MinnowMultiplier() float64               { return 0.1 }
func (stubCfg) BandBounds() (float64, float64, float64) { return 5, 20, 50 }

func tx(userID, gameID int64, amount float64) model.Transaction {
	return model.Transaction{
		CreateDate: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		UserID:     userID,
		GameID:     gameID,
		Amount:     amount,
	}
}

func TestStats_SingleGame(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 7, -100),
		tx(1, 7, 150),
		tx(2, 7, -50),
	})
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 1)
	agg := stats[0]

	assert.Equal(t, int64(7), agg.GameID)
	assert.Equal(t, 150.0, agg.Turnover)
	assert.Equal(t, 150.0, agg.Payout)
	assert.Equal(t, 0.0, agg.GGR)
	assert.Equal(t, 100.0, agg.RTP)
	assert.Equal(t, 75.0, agg.AvgBet)
	assert.Equal(t, 50.0, agg.HitRate)
	// Игрок 1 в плюсе, игрок 2 в минусе
	assert.Equal(t, 50.0, agg.WinnerPct)
	assert.Equal(t, 100.0, agg.TurnoverShare)
	assert.Equal(t, 100.0, agg.PayoutShare)
}

func TestStats_SortedByGameID(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 9, -10),
		tx(1, 7, -10),
		tx(1, 8, -10),
	})
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, int64(7), stats[0].GameID)
	assert.Equal(t, int64(8), stats[1].GameID)
	assert.Equal(t, int64(9), stats[2].GameID)
}

func TestStats_Shares(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 1, -75),
		tx(1, 1, 40),
		tx(1, 2, -25),
		tx(1, 2, 60),
	})
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, 75.0, stats[0].TurnoverShare)
	assert.Equal(t, 40.0, stats[0].PayoutShare)
	assert.Equal(t, 25.0, stats[1].TurnoverShare)
	assert.Equal(t, 60.0, stats[1].PayoutShare)
}

func TestStats_WinBandBoundaries(t *testing.T) {
	// Десять ставок по 10: средняя ставка ровно 10
	txs := make([]model.Transaction, 0, 16)
	for i := 0; i < 10; i++ {
		txs = append(txs, tx(1, 7, -10))
	}
	// Верхняя граница диапазона закрыта
	txs = append(txs,
		tx(1, 7, 50),   // Кратность ровно 5 - Small
		tx(1, 7, 51),   // Чуть выше - Big
		tx(1, 7, 200),  // Ровно 20 - Big
		tx(1, 7, 500),  // Ровно 50 - Mega
		tx(1, 7, 501),  // Выше 50 - Super
	)

	st := store.NewTransactionStore()
	st.Load(txs)
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 1)
	bands := stats[0].Bands

	assert.Equal(t, 1, bands.Small)
	assert.Equal(t, 2, bands.Big)
	assert.Equal(t, 1, bands.Mega)
	assert.Equal(t, 1, bands.Super)
	// Каждый выигрыш попадает ровно в один диапазон
	assert.Equal(t, 5, bands.Total())
	assert.InDelta(t, 20.0, stats[0].BandsPct.Small, 1e-9)
}

func TestStats_AvgBetDefaultsToOneWithoutBets(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{tx(1, 7, 3)})
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 1)

	assert.Equal(t, 1.0, stats[0].AvgBet)
	assert.Zero(t, stats[0].HitRate)
	// Кратность считается к единичной ставке
	assert.Equal(t, 1, stats[0].Bands.Small)
	assert.Equal(t, 3.0, stats[0].AvgMultiplier)
}

func TestStats_Volatility(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 7, -10),
		tx(1, 7, 10),
	})
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 1)
	// Выборочное отклонение для {-10, 10}: sqrt(200)
	assert.InDelta(t, math.Sqrt(200), stats[0].Volatility, 1e-9)
}

func TestStats_VolatilityZeroForSingleTransaction(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{tx(1, 7, -10)})
	s := NewGameService(st, stubCfg{})

	stats := s.Stats()
	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].Volatility)
}
