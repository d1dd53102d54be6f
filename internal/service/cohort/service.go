package cohort

import (
	"sort"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/service"
)

type serv struct {
	store repository.TransactionStore
}

// NewCohortService - активность, новые игроки и удержание
func NewCohortService(store repository.TransactionStore) service.CohortService {
	return &serv{
		store: store,
	}
}

// Report - считает DAU, новых игроков и удержание.
// Новые игроки ищутся по всему набору, а не по выборке:
// дата первого появления должна быть настоящей, а не от окна фильтра
func (s *serv) Report() *model.CohortReport {
	rep := &model.CohortReport{}

	// Активные игроки по датам выборки
	dayUsers := make(map[string]map[int64]struct{})
	for _, t := range s.store.Filtered() {
		key := t.DateKey()
		if dayUsers[key] == nil {
			dayUsers[key] = make(map[int64]struct{})
		}
		dayUsers[key][t.UserID] = struct{}{}
	}

	dates := make([]string, 0, len(dayUsers))
	for d := range dayUsers {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	dauSum := 0
	for _, d := range dates {
		n := len(dayUsers[d])
		rep.DAU = append(rep.DAU, model.DAUPoint{Date: d, Users: n})
		dauSum += n
	}
	if len(rep.DAU) > 0 {
		rep.AvgDAU = float64(dauSum) / float64(len(rep.DAU))
	}

	// Первое появление каждого игрока по всему логу
	firstSeen := make(map[int64]string)
	for _, t := range s.store.All() {
		key := t.DateKey()
		if cur, ok := firstSeen[t.UserID]; !ok || key < cur {
			firstSeen[t.UserID] = key
		}
	}

	newByDay := make(map[string]int)
	for _, day := range firstSeen {
		newByDay[day]++
	}
	newDates := make([]string, 0, len(newByDay))
	for d := range newByDay {
		newDates = append(newDates, d)
	}
	sort.Strings(newDates)

	newSum := 0
	for _, d := range newDates {
		rep.NewUsers = append(rep.NewUsers, model.NewUsersPoint{Date: d, Users: newByDay[d]})
		newSum += newByDay[d]
	}
	if len(rep.NewUsers) > 0 {
		rep.AvgNewUsers = float64(newSum) / float64(len(rep.NewUsers))
	}

	// Удержание между соседними активными датами выборки.
	// Пропуски календарных дней не заполняются: следующая точка -
	// следующая дата с активностью. Меньше двух дат - список пустой
	rateSum := 0.0
	for i := 0; i+1 < len(dates); i++ {
		current := dayUsers[dates[i]]
		next := dayUsers[dates[i+1]]

		retained := 0
		for uid := range current {
			if _, ok := next[uid]; ok {
				retained++
			}
		}

		rate := 0.0
		if len(current) > 0 {
			rate = float64(retained) / float64(len(current)) * 100
		}
		rep.Retention = append(rep.Retention, model.RetentionPoint{Date: dates[i], Rate: rate})
		rateSum += rate
	}
	if len(rep.Retention) > 0 {
		rep.AvgRetention = rateSum / float64(len(rep.Retention))
	}

	return rep
}
