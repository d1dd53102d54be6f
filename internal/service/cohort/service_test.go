package cohort

import (
	"testing"
	"time"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(day int, userID int64) model.Transaction {
	return model.Transaction{
		CreateDate: time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC),
		UserID:     userID,
		GameID:     1,
		Amount:     -10,
	}
}

func TestReport_DAU(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 1),
		tx(1, 1), // Повтор в тот же день не удваивает DAU
		tx(1, 2),
		tx(2, 2),
	})
	s := NewCohortService(st)

	rep := s.Report()

	require.Len(t, rep.DAU, 2)
	assert.Equal(t, model.DAUPoint{Date: "2024-03-01", Users: 2}, rep.DAU[0])
	assert.Equal(t, model.DAUPoint{Date: "2024-03-02", Users: 1}, rep.DAU[1])
	assert.Equal(t, 1.5, rep.AvgDAU)
}

func TestReport_RetentionBetweenAdjacentActiveDates(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 1),
		tx(1, 2),
		// 2 марта активности нет, следующая точка - 3 марта
		tx(3, 1),
		tx(5, 3),
	})
	s := NewCohortService(st)

	rep := s.Report()

	require.Len(t, rep.Retention, 2)
	// Из двух игроков 1 марта до следующей активной даты дошел один
	assert.Equal(t, "2024-03-01", rep.Retention[0].Date)
	assert.Equal(t, 50.0, rep.Retention[0].Rate)
	// Игрок 1 с 3 марта к 5 марта не вернулся
	assert.Equal(t, "2024-03-03", rep.Retention[1].Date)
	assert.Equal(t, 0.0, rep.Retention[1].Rate)
	assert.Equal(t, 25.0, rep.AvgRetention)
}

func TestReport_SingleDateHasNoRetention(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{tx(1, 1), tx(1, 2)})
	s := NewCohortService(st)

	rep := s.Report()

	assert.Empty(t, rep.Retention)
	assert.Zero(t, rep.AvgRetention)
}

func TestReport_FullRetentionSingleUser(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{tx(1, 1), tx(2, 1)})
	s := NewCohortService(st)

	rep := s.Report()

	require.Len(t, rep.Retention, 1)
	assert.Equal(t, 100.0, rep.Retention[0].Rate)
}

func TestReport_NewUsersComeFromFullDataset(t *testing.T) {
	st := store.NewTransactionStore()
	st.Load([]model.Transaction{
		tx(1, 1),
		tx(2, 1),
		tx(2, 2),
	})
	// Фильтр оставляет только 2 марта, но первое появление
	// игрока 1 остается 1 марта
	st.SetFilter(model.Filter{
		From: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
	})
	s := NewCohortService(st)

	rep := s.Report()

	require.Len(t, rep.NewUsers, 2)
	assert.Equal(t, model.NewUsersPoint{Date: "2024-03-01", Users: 1}, rep.NewUsers[0])
	assert.Equal(t, model.NewUsersPoint{Date: "2024-03-02", Users: 1}, rep.NewUsers[1])

	// DAU при этом считается по выборке
	require.Len(t, rep.DAU, 1)
	assert.Equal(t, "2024-03-02", rep.DAU[0].Date)
}

func TestReport_Empty(t *testing.T) {
	st := store.NewTransactionStore()
	s := NewCohortService(st)

	rep := s.Report()

	assert.Empty(t, rep.DAU)
	assert.Empty(t, rep.NewUsers)
	assert.Empty(t, rep.Retention)
}
