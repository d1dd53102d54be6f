package game

import (
	"math"
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

// NewGameService - показатели в разрезе игр
func NewGameService(store repository.TransactionStore, cfg config.AnalyticsConfig) service.GameService {
	return &serv{
		store: store,
		cfg:   cfg,
	}
}

// Stats - агрегаты по каждой игре выборки, по возрастанию ID игры
func (s *serv) Stats() []model.GameAggregate {
	byGame := make(map[int64][]model.Transaction)
	for _, t := range s.store.Filtered() {
		byGame[t.GameID] = append(byGame[t.GameID], t)
	}

	ids := make([]int64, 0, len(byGame))
	for id := range byGame {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	stats := make([]model.GameAggregate, 0, len(ids))
	var totalTurnover, totalPayout float64
	for _, id := range ids {
		agg := s.analyzeGame(id, byGame[id])
		totalTurnover += agg.Turnover
		totalPayout += agg.Payout
		stats = append(stats, agg)
	}

	// Доли игр в общем обороте и выплатах выборки
	for i := range stats {
		if totalTurnover > 0 {
			stats[i].TurnoverShare = stats[i].Turnover / totalTurnover * 100
		}
		if totalPayout > 0 {
			stats[i].PayoutShare = stats[i].Payout / totalPayout * 100
		}
	}

	return stats
}

func (s *serv) analyzeGame(id int64, txs []model.Transaction) model.GameAggregate {
	agg := model.GameAggregate{GameID: id}

	betCount := 0
	var wins []float64
	perUser := make(map[int64]float64)

	for _, t := range txs {
		perUser[t.UserID] += t.Amount
		switch {
		case t.Amount < 0:
			betCount++
			agg.Turnover += -t.Amount
		case t.Amount > 0:
			wins = append(wins, t.Amount)
			agg.Payout += t.Amount
		}
	}

	agg.GGR = agg.Turnover - agg.Payout
	if agg.Turnover > 0 {
		agg.RTP = agg.Payout / agg.Turnover * 100
	}

	// Средняя ставка по умолчанию 1, чтобы кратность выигрыша
	// оставалась определенной и без единой ставки
	agg.AvgBet = 1
	if betCount > 0 {
		agg.AvgBet = agg.Turnover / float64(betCount)
		agg.HitRate = float64(len(wins)) / float64(betCount) * 100
	}

	agg.Volatility = sampleStdev(txs)

	winnerCount := 0
	for _, sum := range perUser {
		if sum > 0 {
			winnerCount++
		}
	}
	if len(perUser) > 0 {
		agg.WinnerPct = float64(winnerCount) / float64(len(perUser)) * 100
	}

	agg.Bands, agg.AvgMultiplier = bandWins(wins, agg.AvgBet, s.cfg)
	agg.BandsPct = bandsPct(agg.Bands)

	return agg
}

// bandWins - раскладывает выигрыши по диапазонам кратности к средней ставке.
// Нижняя граница открыта, верхняя закрыта, верхний диапазон без предела
func bandWins(wins []float64, avgBet float64, cfg config.AnalyticsConfig) (model.WinBands, float64) {
	small, big, mega := cfg.BandBounds()

	var bands model.WinBands
	multSum := 0.0
	for _, w := range wins {
		mult := w / avgBet
		multSum += mult
		switch {
		case mult <= small:
			bands.Small++
		case mult <= big:
			bands.Big++
		case mult <= mega:
			bands.Mega++
		default:
			bands.Super++
		}
	}

	avgMult := 0.0
	if len(wins) > 0 {
		avgMult = multSum / float64(len(wins))
	}
	return bands, avgMult
}

func bandsPct(bands model.WinBands) model.WinBandsPct {
	total := bands.Total()
	if total == 0 {
		return model.WinBandsPct{}
	}
	return model.WinBandsPct{
		Small: float64(bands.Small) / float64(total) * 100,
		Big:   float64(bands.Big) / float64(total) * 100,
		Mega:  float64(bands.Mega) / float64(total) * 100,
		Super: float64(bands.Super) / float64(total) * 100,
	}
}

// sampleStdev - выборочное стандартное отклонение amount.
// Для менее чем двух транзакций возвращает 0
func sampleStdev(txs []model.Transaction) float64 {
	n := len(txs)
	if n < 2 {
		return 0
	}

	sum := 0.0
	for _, t := range txs {
		sum += t.Amount
	}
	mean := sum / float64(n)

	sqDiff := 0.0
	for _, t := range txs {
		d := t.Amount - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff / float64(n-1))
}
