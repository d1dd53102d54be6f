package model

// KPIReport - глобальные показатели по отфильтрованным транзакциям
type KPIReport struct {
	Turnover     float64 // Сумма всех ставок по модулю
	TotalPayout  float64 // Сумма всех выигрышей
	GGR          float64 // Turnover - TotalPayout
	RTP          float64 // (TotalPayout / Turnover) * 100
	SpinCount    int     // Количество ставок
	AvgBet       float64 // Turnover / SpinCount
	HitRate      float64 // (количество выигрышей / количество ставок) * 100
	TotalUsers   int     // Уникальных игроков в выборке
	SpinsPerUser float64 // SpinCount / TotalUsers

	Thresholds []ThresholdCount // Распределение игроков по накопленным ставкам
}

// ThresholdCount - количество игроков, чья накопленная ставка достигла порога
type ThresholdCount struct {
	Threshold float64
	Users     int
}

// DAUPoint - количество активных игроков за день
type DAUPoint struct {
	Date  string
	Users int
}

// NewUsersPoint - количество новых игроков за день.
// Первое появление ищется по всему логу, а не по выборке
type NewUsersPoint struct {
	Date  string
	Users int
}

// RetentionPoint - удержание между соседними активными датами выборки.
// Соседние активные даты не обязательно соседние календарные дни
type RetentionPoint struct {
	Date string  // День i
	Rate float64 // Доля игроков дня i, активных и в следующую активную дату, %
}

// CohortReport - показатели активности и удержания
type CohortReport struct {
	DAU          []DAUPoint
	AvgDAU       float64
	NewUsers     []NewUsersPoint
	AvgNewUsers  float64
	Retention    []RetentionPoint
	AvgRetention float64
}
