package segment

import (
	"testing"
	"time"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCfg struct{}

func (stubCfg) BetThresholds() []float64                { return nil }
func (stubCfg) WhaleMultiplier() float64                { return 10 }
func (stubCfg) MinnowMultiplier() float64               { return 0.1 }
func (stubCfg) BandBounds() (float64, float64, float64) { return 5, 20, 50 }

func tx(userID int64, amount float64) model.Transaction {
	return model.Transaction{
		CreateDate: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		UserID:     userID,
		GameID:     1,
		Amount:     amount,
	}
}

func txAt(minute int, userID, gameID int64, amount float64) model.Transaction {
	return model.Transaction{
		CreateDate: time.Date(2024, time.March, 1, 12, minute, 0, 0, time.UTC),
		UserID:     userID,
		GameID:     gameID,
		Amount:     amount,
	}
}

func TestUsers_SortedWithPersonalRTP(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(2, -100),
		tx(2, 50),
		tx(1, -10),
	})
	s := NewSegmentService(st, stubCfg{})

	users := s.Users()
	require.Len(t, users, 2)

	assert.Equal(t, int64(1), users[0].UserID)
	assert.Equal(t, 1, users[0].Spins)
	assert.Zero(t, users[0].RTP)

	assert.Equal(t, int64(2), users[1].UserID)
	assert.Equal(t, 50.0, users[1].RTP)
}

func TestAggregate_UnknownUser(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{tx(1, -10)})
	s := NewSegmentService(st, stubCfg{})

	_, err := s.Aggregate(99)
	require.Error(t, err)
	assert.Equal(t, "user not found in current filter", err.Error())
}

func TestAggregate_Basics(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -100),
		tx(1, 150),
		tx(1, -50),
		tx(2, -10),
	})
	s := NewSegmentService(st, stubCfg{})

	agg, err := s.Aggregate(1)
	require.NoError(t, err)

	assert.Equal(t, 150.0, agg.TotalBet)
	assert.Equal(t, 150.0, agg.TotalPayout)
	assert.Equal(t, 0.0, agg.PnL)
	assert.Equal(t, 2, agg.SpinCount)
	assert.Equal(t, 100.0, agg.RTP)
	assert.Equal(t, 150.0, agg.MaxWin)
}

func TestAggregate_MaxWinOverAllAmounts(t *testing.T) {
	// Без единого выигрыша максимум берется по всем суммам,
	// то есть оказывается наименьшей по модулю ставкой
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -20),
		tx(1, -10),
	})
	s := NewSegmentService(st, stubCfg{})

	agg, err := s.Aggregate(1)
	require.NoError(t, err)
	assert.Equal(t, -10.0, agg.MaxWin)
}

func TestAggregate_SizeTags(t *testing.T) {
	txs := []model.Transaction{tx(1, -1000)}
	for uid := int64(2); uid <= 11; uid++ {
		txs = append(txs, tx(uid, -1))
	}
	st := store.NewTransactionStore()
	st.Load(txs)
	s := NewSegmentService(st, stubCfg{})

	// Средняя ставка выборки 1010/11, порог кита 10x
	whale, err := s.Aggregate(1)
	require.NoError(t, err)
	assert.Equal(t, []string{model.TagWhale, model.TagLoser}, whale.Tags)

	minnow, err := s.Aggregate(2)
	require.NoError(t, err)
	assert.Equal(t, []string{model.TagMinnow, model.TagLoser}, minnow.Tags)
}

func TestAggregate_ResultTagZeroPnLIsLoser(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -50),
		tx(1, 50),
	})
	s := NewSegmentService(st, stubCfg{})

	agg, err := s.Aggregate(1)
	require.NoError(t, err)
	assert.Contains(t, agg.Tags, model.TagLoser)
	assert.NotContains(t, agg.Tags, model.TagWinner)
}

func TestAggregate_WinnerTag(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -50),
		tx(1, 120),
		tx(2, -100),
	})
	s := NewSegmentService(st, stubCfg{})

	agg, err := s.Aggregate(1)
	require.NoError(t, err)
	assert.Contains(t, agg.Tags, model.TagWinner)
}

func TestAggregate_GGRShare(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -100),
		tx(1, 50),
		tx(2, -100),
	})
	s := NewSegmentService(st, stubCfg{})

	agg, err := s.Aggregate(1)
	require.NoError(t, err)
	require.True(t, agg.GGRShare.Applicable)
	assert.InDelta(t, 100.0/3, agg.GGRShare.Pct, 1e-9)
}

func TestAggregate_GGRShareNotApplicableAtZeroGGR(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -100),
		tx(1, 100),
	})
	s := NewSegmentService(st, stubCfg{})

	agg, err := s.Aggregate(1)
	require.NoError(t, err)
	assert.False(t, agg.GGRShare.Applicable)
}

func TestInsight_Journey(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		txAt(1, 5, 1, -10),
		txAt(2, 5, 1, 30),
		txAt(3, 5, 2, -10),
		txAt(4, 5, 1, -10),
		txAt(5, 9, 3, -999), // Чужая транзакция в кривую не попадает
	})
	s := NewSegmentService(st, stubCfg{})

	insight, err := s.Insight(5)
	require.NoError(t, err)
	require.Len(t, insight.Journey, 4)

	assert.Equal(t, 1, insight.Journey[0].Seq)
	assert.Equal(t, -10.0, insight.Journey[0].CumPnL)
	assert.True(t, insight.Journey[0].Switched)

	assert.Equal(t, 20.0, insight.Journey[1].CumPnL)
	assert.False(t, insight.Journey[1].Switched)

	// Смена игры помечается с обеих сторон
	assert.True(t, insight.Journey[2].Switched)
	assert.True(t, insight.Journey[3].Switched)
	assert.Equal(t, 0.0, insight.Journey[3].CumPnL)
}

func TestInsight_PoolTrend(t *testing.T) {
	withPool := txAt(2, 5, 1, 30)
	withPool.Pool = decimal.New(123456, -2)
	withPool.HasPool = true

	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		txAt(1, 5, 1, -10),
		withPool,
	})
	s := NewSegmentService(st, stubCfg{})

	insight, err := s.Insight(5)
	require.NoError(t, err)
	require.Len(t, insight.PoolTrend, 1)
	assert.Equal(t, 2, insight.PoolTrend[0].Seq)
	assert.True(t, insight.PoolTrend[0].Pool.Equal(decimal.New(123456, -2)))
}
