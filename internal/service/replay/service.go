package replay

import (
	"sync"
	"time"

	"slotinsight_backend/internal/config"
	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/service"
)

type serv struct {
	store repository.TransactionStore
	cfg   config.ReplayConfig

	mtx  sync.Mutex
	sess *session // nil до первого обращения и после Reset
}

// Состояние одной сессии воспроизведения. Живет от построения до
// смены фильтра: сортировка, сетка и границы осей считаются один раз
type session struct {
	sorted      []model.Transaction
	times       []time.Time // Колонка времени для бинарного поиска
	checkpoints []model.Checkpoint
	bounds      model.AxisBounds

	index   int
	playing bool
}

// NewReplayService - воспроизведение накопленных результатов игроков
// по равномерной временной сетке
func NewReplayService(store repository.TransactionStore, cfg config.ReplayConfig) service.ReplayService {
	return &serv{
		store: store,
		cfg:   cfg,
	}
}

// Checkpoints - временная сетка текущей сессии
func (s *serv) Checkpoints() []model.Checkpoint {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	out := make([]model.Checkpoint, len(sess.checkpoints))
	copy(out, sess.checkpoints)
	return out
}

// State - текущий индекс и флаг воспроизведения
func (s *serv) State() (int, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	return sess.index, sess.playing
}

// Reset - сброс сессии воспроизведения. Вызывается при смене фильтра:
// сетка и границы осей становятся недействительными, индекс теряется.
// Идущее воспроизведение останавливается
func (s *serv) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.sess != nil {
		s.sess.playing = false
	}
	s.sess = nil
}

// ensureSession строит сессию по текущему состоянию хранилища.
// Вызывать только под мьютексом
func (s *serv) ensureSession() *session {
	if s.sess != nil {
		return s.sess
	}

	sorted := s.store.Sorted()
	sess := &session{
		sorted: sorted,
		times:  make([]time.Time, len(sorted)),
	}
	for i, t := range sorted {
		sess.times[i] = t.CreateDate
	}

	sess.checkpoints = buildCheckpoints(sess.times, s.cfg.CheckpointCount())
	sess.bounds = buildBounds(sorted)

	// По умолчанию сессия стоит на последнем кадре - финальной картине окна
	sess.index = len(sess.checkpoints) - 1
	if sess.index < 0 {
		sess.index = 0
	}

	s.sess = sess
	return sess
}

// buildCheckpoints - равномерная сетка между минимальным и максимальным
// временем. Если они совпадают, сетка состоит из одной точки
func buildCheckpoints(times []time.Time, count int) []model.Checkpoint {
	if len(times) == 0 {
		return nil
	}

	minT := times[0]
	maxT := times[len(times)-1]
	if !maxT.After(minT) || count < 2 {
		return []model.Checkpoint{{Index: 0, At: minT}}
	}

	span := maxT.Sub(minT)
	checkpoints := make([]model.Checkpoint, count)
	for i := 0; i < count; i++ {
		at := minT.Add(span * time.Duration(i) / time.Duration(count-1))
		checkpoints[i] = model.Checkpoint{Index: i, At: at}
	}
	// Последняя точка ровно в максимуме, без ошибки округления деления
	checkpoints[count-1].At = maxT
	return checkpoints
}

// buildBounds - границы осей по финальному состоянию всего окна.
// Каждый кадр рисуется в этих границах, график не масштабируется
func buildBounds(sorted []model.Transaction) model.AxisBounds {
	var turnover float64
	cumBet := make(map[int64]float64)
	cumPnL := make(map[int64]float64)
	for _, t := range sorted {
		if t.Amount < 0 {
			turnover += -t.Amount
			cumBet[t.UserID] += -t.Amount
		}
		cumPnL[t.UserID] += t.Amount
	}

	// Запасной вариант оси X, если итоговых агрегатов нет
	bounds := model.AxisBounds{XMax: 1000}
	if turnover > 0 {
		bounds.XMax = turnover * 0.1
	}

	if len(cumPnL) == 0 {
		return bounds
	}

	first := true
	for uid := range cumPnL {
		bet := cumBet[uid]
		pnl := cumPnL[uid]
		if first {
			bounds.XMax = bet
			bounds.YMin = pnl
			bounds.YMax = pnl
			first = false
			continue
		}
		if bet > bounds.XMax {
			bounds.XMax = bet
		}
		if pnl < bounds.YMin {
			bounds.YMin = pnl
		}
		if pnl > bounds.YMax {
			bounds.YMax = pnl
		}
	}

	bounds.XMax *= 1.1
	bounds.YMin *= 1.1
	bounds.YMax *= 1.1
	return bounds
}
