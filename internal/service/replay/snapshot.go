package replay

import (
	"errors"
	"sort"
	"time"

	"slotinsight_backend/internal/model"
)

// Snapshot - срез на чекпоинте сетки
func (s *serv) Snapshot(index int) (*model.Snapshot, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	if index < 0 || index >= len(sess.checkpoints) {
		return nil, errors.New("checkpoint index out of range")
	}
	return sess.snapshotAt(sess.checkpoints[index].At, index), nil
}

// SnapshotAtTime - срез на произвольный момент времени.
// Момент вне диапазона данных не ошибка: до минимума срез пустой,
// после максимума - полный, по тому же правилу бинарного поиска
func (s *serv) SnapshotAtTime(at time.Time) (*model.Snapshot, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	return sess.snapshotAt(at, -1), nil
}

// Current - срез на текущем индексе сессии.
// Для пустой выборки возвращает пустой срез
func (s *serv) Current() (*model.Snapshot, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	if len(sess.checkpoints) == 0 {
		return &model.Snapshot{Index: -1, Bounds: sess.bounds}, nil
	}
	return sess.snapshotAt(sess.checkpoints[sess.index].At, sess.index), nil
}

// snapshotAt - накопленное состояние игроков на момент at.
// Срез по времени ищется бинарным поиском по отсортированной колонке:
// берутся все транзакции со временем <= at
func (sess *session) snapshotAt(at time.Time, index int) *model.Snapshot {
	idx := sess.sliceIndex(at)

	cumBet := make(map[int64]float64)
	cumPnL := make(map[int64]float64)
	for _, t := range sess.sorted[:idx] {
		if t.Amount < 0 {
			cumBet[t.UserID] += -t.Amount
		}
		cumPnL[t.UserID] += t.Amount
	}

	snap := &model.Snapshot{
		Index:  index,
		At:     at,
		Bounds: sess.bounds,
	}
	for uid, pnl := range cumPnL {
		status := model.TagLoser
		if pnl > 0 {
			status = model.TagWinner
		}
		snap.Players = append(snap.Players, model.PlayerPoint{
			UserID: uid,
			CumBet: cumBet[uid],
			CumPnL: pnl,
			Status: status,
		})
	}
	sort.Slice(snap.Players, func(i, j int) bool {
		return snap.Players[i].UserID < snap.Players[j].UserID
	})

	return snap
}

// sliceIndex - позиция вставки справа: все транзакции до нее
// имеют время <= at
func (sess *session) sliceIndex(at time.Time) int {
	return sort.Search(len(sess.times), func(i int) bool {
		return sess.times[i].After(at)
	})
}
