package kpi

import (
	"slotinsight_backend/internal/config"
	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/service"
)

type serv struct {
	store repository.TransactionStore
	cfg   config.AnalyticsConfig
}

// NewKPIService - глобальные показатели по текущей выборке
func NewKPIService(store repository.TransactionStore, cfg config.AnalyticsConfig) service.KPIService {
	return &serv{
		store: store,
		cfg:   cfg,
	}
}

// Report - считает KPI одним проходом по отфильтрованным транзакциям.
// Пустая выборка дает нулевой отчет, все деления защищены от нуля
func (s *serv) Report() *model.KPIReport {
	txs := s.store.Filtered()
	rep := &model.KPIReport{}

	users := make(map[int64]struct{})
	userBets := make(map[int64]float64)
	winCount := 0

	for _, t := range txs {
		users[t.UserID] = struct{}{}
		switch {
		case t.Amount < 0:
			rep.SpinCount++
			rep.Turnover += -t.Amount
			userBets[t.UserID] += -t.Amount
		case t.Amount > 0:
			winCount++
			rep.TotalPayout += t.Amount
		}
	}

	rep.GGR = rep.Turnover - rep.TotalPayout
	if rep.Turnover > 0 {
		rep.RTP = rep.TotalPayout / rep.Turnover * 100
	}
	if rep.SpinCount > 0 {
		rep.AvgBet = rep.Turnover / float64(rep.SpinCount)
		rep.HitRate = float64(winCount) / float64(rep.SpinCount) * 100
	}

	rep.TotalUsers = len(users)
	if rep.TotalUsers > 0 {
		rep.SpinsPerUser = float64(rep.SpinCount) / float64(rep.TotalUsers)
	}

	// Сколько игроков накопили ставку не меньше каждого порога
	for _, threshold := range s.cfg.BetThresholds() {
		count := 0
		for _, bet := range userBets {
			if bet >= threshold {
				count++
			}
		}
		rep.Thresholds = append(rep.Thresholds, model.ThresholdCount{
			Threshold: threshold,
			Users:     count,
		})
	}

	return rep
}
