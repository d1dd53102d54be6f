package segment

import (
	"errors"
	"sort"

	"slotinsight_backend/internal/config"
	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/service"
)

type serv struct {
	store repository.TransactionStore
	cfg   config.AnalyticsConfig
}

// NewSegmentService - показатели и теги в разрезе игроков
func NewSegmentService(store repository.TransactionStore, cfg config.AnalyticsConfig) service.SegmentService {
	return &serv{
		store: store,
		cfg:   cfg,
	}
}

// Users - все игроки выборки по возрастанию ID,
// с личным RTP и количеством ставок для списков выбора
func (s *serv) Users() []model.UserOption {
	type acc struct {
		turnover float64
		payout   float64
		spins    int
	}
	perUser := make(map[int64]*acc)

	for _, t := range s.store.Filtered() {
		a := perUser[t.UserID]
		if a == nil {
			a = &acc{}
			perUser[t.UserID] = a
		}
		switch {
		case t.Amount < 0:
			a.turnover += -t.Amount
			a.spins++
		case t.Amount > 0:
			a.payout += t.Amount
		}
	}

	options := make([]model.UserOption, 0, len(perUser))
	for uid, a := range perUser {
		opt := model.UserOption{UserID: uid, Spins: a.spins}
		if a.turnover > 0 {
			opt.RTP = a.payout / a.turnover * 100
		}
		options = append(options, opt)
	}
	sort.Slice(options, func(i, j int) bool { return options[i].UserID < options[j].UserID })
	return options
}

// Aggregate - показатели и теги одного игрока.
// Возвращает ошибку, если игрока нет в текущей выборке
func (s *serv) Aggregate(userID int64) (*model.UserAggregate, error) {
	userTxs := s.userTransactions(userID)
	if len(userTxs) == 0 {
		return nil, errors.New("user not found in current filter")
	}

	globalAvgBet, globalGGR := s.globalStats()
	agg := buildAggregate(userID, userTxs)

	agg.Tags = buildTags(agg.TotalBet, agg.PnL, globalAvgBet, s.cfg)
	agg.GGRShare = buildGGRShare(agg.TotalBet, agg.TotalPayout, globalGGR)

	return &agg, nil
}

// Insight - подробная сводка: агрегат, кривая накопленного
// результата по порядку транзакций и личный уровень пула
func (s *serv) Insight(userID int64) (*model.UserInsight, error) {
	agg, err := s.Aggregate(userID)
	if err != nil {
		return nil, err
	}

	// Sorted дает хронологию, срез по игроку сохраняет ее
	var userTxs []model.Transaction
	for _, t := range s.store.Sorted() {
		if t.UserID == userID {
			userTxs = append(userTxs, t)
		}
	}

	insight := &model.UserInsight{Aggregate: *agg}

	cumPnL := 0.0
	prevGame := int64(-1)
	for i, t := range userTxs {
		cumPnL += t.Amount
		insight.Journey = append(insight.Journey, model.JourneyPoint{
			Seq:      i + 1,
			At:       t.CreateDate,
			GameID:   t.GameID,
			Amount:   t.Amount,
			CumPnL:   cumPnL,
			Switched: t.GameID != prevGame,
		})
		prevGame = t.GameID

		if t.HasPool {
			insight.PoolTrend = append(insight.PoolTrend, model.PoolPoint{
				Seq:  i + 1,
				At:   t.CreateDate,
				Pool: t.Pool,
			})
		}
	}

	return insight, nil
}

func (s *serv) userTransactions(userID int64) []model.Transaction {
	var userTxs []model.Transaction
	for _, t := range s.store.Filtered() {
		if t.UserID == userID {
			userTxs = append(userTxs, t)
		}
	}
	return userTxs
}

// globalStats - средняя ставка и GGR по всей выборке,
// относительно них считаются теги и вклад в GGR
func (s *serv) globalStats() (avgBet, ggr float64) {
	var turnover, payout float64
	spins := 0
	for _, t := range s.store.Filtered() {
		switch {
		case t.Amount < 0:
			turnover += -t.Amount
			spins++
		case t.Amount > 0:
			payout += t.Amount
		}
	}
	if spins > 0 {
		avgBet = turnover / float64(spins)
	}
	return avgBet, turnover - payout
}

func buildAggregate(userID int64, txs []model.Transaction) model.UserAggregate {
	agg := model.UserAggregate{UserID: userID}

	first := true
	for _, t := range txs {
		agg.PnL += t.Amount
		if first || t.Amount > agg.MaxWin {
			agg.MaxWin = t.Amount
			first = false
		}
		switch {
		case t.Amount < 0:
			agg.TotalBet += -t.Amount
			agg.SpinCount++
		case t.Amount > 0:
			agg.TotalPayout += t.Amount
		}
	}

	if agg.TotalBet > 0 {
		agg.RTP = agg.TotalPayout / agg.TotalBet * 100
	}
	return agg
}

// buildTags - теги игрока. Порядок фиксирован: сначала тег размера,
// затем тег результата. Нулевой итог считается проигрышем
func buildTags(totalBet, pnl, globalAvgBet float64, cfg config.AnalyticsConfig) []string {
	var tags []string

	if totalBet > globalAvgBet*cfg.WhaleMultiplier() {
		tags = append(tags, model.TagWhale)
	} else if totalBet < globalAvgBet*cfg.MinnowMultiplier() {
		tags = append(tags, model.TagMinnow)
	}

	if pnl > 0 {
		tags = append(tags, model.TagWinner)
	} else {
		tags = append(tags, model.TagLoser)
	}

	return tags
}

// buildGGRShare - вклад игрока в общий GGR.
// При нулевом GGR доля не определена и помечается как неприменимая
func buildGGRShare(totalBet, totalPayout, globalGGR float64) model.GGRShare {
	if globalGGR == 0 {
		return model.GGRShare{Applicable: false}
	}
	return model.GGRShare{
		Pct:        (totalBet - totalPayout) / globalGGR * 100,
		Applicable: true,
	}
}
