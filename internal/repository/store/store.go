package store

import (
	"sort"
	"sync"
	"time"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"
)

// Реализация хранилища транзакций сессии анализа в памяти
type Store struct {
	mtx sync.RWMutex

	raw      []model.Transaction
	filter   model.Filter
	filtered []model.Transaction
	sorted   []model.Transaction // Отфильтрованные по возрастанию времени
}

// NewTransactionStore - создает пустое хранилище сессии
func NewTransactionStore() repository.TransactionStore {
	return &Store{}
}

// Load - загрузка нового набора транзакций.
// Текущий фильтр сбрасывается на "все данные"
func (s *Store) Load(txs []model.Transaction) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.raw = make([]model.Transaction, len(txs))
	copy(s.raw, txs)
	s.filter = model.Filter{}
	s.rebuild()
}

// SetFilter - применение фильтра по датам и играм.
// Срезы пересчитываются сразу, один раз на смену фильтра
func (s *Store) SetFilter(f model.Filter) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.filter = f
	s.rebuild()
}

func (s *Store) rebuild() {
	filtered := make([]model.Transaction, 0, len(s.raw))
	for _, t := range s.raw {
		if s.filter.Match(t) {
			filtered = append(filtered, t)
		}
	}
	s.filtered = filtered

	// Сортировка по времени стабильная, чтобы порядок внутри
	// одинаковых временных меток не менялся между вызовами
	s.sorted = make([]model.Transaction, len(filtered))
	copy(s.sorted, filtered)
	sort.SliceStable(s.sorted, func(i, j int) bool {
		return s.sorted[i].CreateDate.Before(s.sorted[j].CreateDate)
	})
}

// CurrentFilter - текущий фильтр сессии
func (s *Store) CurrentFilter() model.Filter {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.filter
}

// All - весь загруженный набор без фильтра
func (s *Store) All() []model.Transaction {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return copySlice(s.raw)
}

// Filtered - транзакции, попадающие под текущий фильтр
func (s *Store) Filtered() []model.Transaction {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return copySlice(s.filtered)
}

// Sorted - отфильтрованные транзакции по возрастанию времени
func (s *Store) Sorted() []model.Transaction {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return copySlice(s.sorted)
}

// GameIDs - уникальные ID игр всего набора по возрастанию
func (s *Store) GameIDs() []int64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, t := range s.raw {
		if _, ok := seen[t.GameID]; !ok {
			seen[t.GameID] = struct{}{}
			ids = append(ids, t.GameID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Bounds - минимальное и максимальное время отфильтрованного набора.
// ok == false, если набор пуст
func (s *Store) Bounds() (time.Time, time.Time, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if len(s.sorted) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.sorted[0].CreateDate, s.sorted[len(s.sorted)-1].CreateDate, true
}

func copySlice(src []model.Transaction) []model.Transaction {
	dst := make([]model.Transaction, len(src))
	copy(dst, src)
	return dst
}
