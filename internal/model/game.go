package model

// GameAggregate - показатели одной игры в рамках выборки
type GameAggregate struct {
	GameID        int64
	Turnover      float64
	Payout        float64
	GGR           float64
	RTP           float64
	AvgBet        float64 // Средняя ставка по модулю, 1 если ставок нет
	Volatility    float64 // Выборочное стандартное отклонение amount (ставки и выигрыши вместе)
	HitRate       float64 // (количество выигрышей / количество ставок) * 100
	WinnerPct     float64 // Доля игроков игры с положительным итогом, %
	TurnoverShare float64 // Доля игры в общем обороте выборки, %
	PayoutShare   float64 // Доля игры в общих выплатах выборки, %

	Bands         WinBands    // Количество выигрышей по диапазонам кратности
	BandsPct      WinBandsPct // Структура выигрышей в процентах
	AvgMultiplier float64     // Средняя кратность выигрыша к средней ставке
}

// WinBands - количество выигрышей по кратности к средней ставке игры.
// Нижняя граница диапазона открыта, верхняя закрыта:
// кратность ровно 5 попадает в Small, ровно 50 - в Mega
type WinBands struct {
	Small int // (0, 5]
	Big   int // (5, 20]
	Mega  int // (20, 50]
	Super int // (50, +inf)
}

// WinBandsPct - доли диапазонов от общего числа выигрышей игры, %
type WinBandsPct struct {
	Small float64
	Big   float64
	Mega  float64
	Super float64
}

// Total - суммарное количество выигрышей по всем диапазонам
func (b WinBands) Total() int {
	return b.Small + b.Big + b.Mega + b.Super
}
