package kpi

import (
	"testing"
	"time"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCfg struct {
	thresholds []float64
}

func (c stubCfg) BetThresholds() []float64            { return c.thresholds }
func (c stubCfg) WhaleMultiplier() float64            { return 10 }
func (c stubCfg) MinnowMultiplier() float64           { return 0.1 }
func (c stubCfg) BandBounds() (float64, float64, float64) { return 5, 20, 50 }

func tx(userID int64, amount float64) model.Transaction {
	return model.Transaction{
		CreateDate: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		UserID:     userID,
		GameID:     1,
		Amount:     amount,
	}
}

func TestReport_BasicScenario(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -100),
		tx(1, 150),
		tx(2, -50),
	})
	s := NewKPIService(st, stubCfg{})

	rep := s.Report()

	assert.Equal(t, 150.0, rep.Turnover)
	assert.Equal(t, 150.0, rep.TotalPayout)
	assert.Equal(t, 0.0, rep.GGR)
	assert.Equal(t, 100.0, rep.RTP)
	assert.Equal(t, 2, rep.SpinCount)
	assert.Equal(t, 75.0, rep.AvgBet)
	assert.Equal(t, 50.0, rep.HitRate)
	assert.Equal(t, 2, rep.TotalUsers)
	assert.Equal(t, 1.0, rep.SpinsPerUser)
}

func TestReport_ZeroAmountIsNeitherBetNorWin(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -100),
		tx(1, 0),
	})
	s := NewKPIService(st, stubCfg{})

	rep := s.Report()

	assert.Equal(t, 1, rep.SpinCount)
	assert.Equal(t, 0.0, rep.TotalPayout)
	assert.Equal(t, 0.0, rep.HitRate)
	// Нулевая транзакция все равно делает игрока активным
	assert.Equal(t, 1, rep.TotalUsers)
}

func TestReport_EmptySelection(t *testing.T) {
	st := store.NewTransactionStore()
	s := NewKPIService(st, stubCfg{thresholds: []float64{100}})

	rep := s.Report()

	assert.Zero(t, rep.Turnover)
	assert.Zero(t, rep.RTP)
	assert.Zero(t, rep.AvgBet)
	assert.Zero(t, rep.SpinsPerUser)
	require.Len(t, rep.Thresholds, 1)
	assert.Equal(t, 0, rep.Thresholds[0].Users)
}

func TestReport_ThresholdsCountCumulativeBets(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, -60),
		tx(1, -40), // Игрок 1 накопил ровно 100
		tx(2, -50),
		tx(2, 500), // Выигрыши в пороги не входят
	})
	s := NewKPIService(st, stubCfg{thresholds: []float64{100, 200}})

	rep := s.Report()

	require.Len(t, rep.Thresholds, 2)
	assert.Equal(t, 100.0, rep.Thresholds[0].Threshold)
	// Порог достигается нестрого: ровно 100 считается
	assert.Equal(t, 1, rep.Thresholds[0].Users)
	assert.Equal(t, 0, rep.Thresholds[1].Users)
}
