package session

import (
	"sort"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/service"
)

type serv struct {
	store  repository.TransactionStore
	replay service.ReplayService
}

// NewSessionService - жизненный цикл сессии анализа.
// Владеет хранилищем и следит, чтобы смена данных или фильтра
// сбрасывала сессию воспроизведения
func NewSessionService(store repository.TransactionStore, replay service.ReplayService) service.SessionService {
	return &serv{
		store:  store,
		replay: replay,
	}
}

// ReplaceData - замена набора транзакций сессии
func (s *serv) ReplaceData(txs []model.Transaction) {
	s.store.Load(txs)
	s.replay.Reset()
}

// SetFilter - смена фильтра. Чекпоинты воспроизведения становятся
// недействительными и сессия воспроизведения сбрасывается
func (s *serv) SetFilter(f model.Filter) {
	s.store.SetFilter(f)
	s.replay.Reset()
}

func (s *serv) Filter() model.Filter {
	return s.store.CurrentFilter()
}

func (s *serv) GameIDs() []int64 {
	return s.store.GameIDs()
}

// RawDetail - отфильтрованные транзакции по убыванию времени
// для таблицы сырых данных
func (s *serv) RawDetail() []model.Transaction {
	txs := s.store.Sorted()
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[j].CreateDate.Before(txs[i].CreateDate)
	})
	return txs
}
