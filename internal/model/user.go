package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Теги игрока. Сначала тег размера (если порог достигнут), затем тег результата
const (
	TagWhale  = "Whale"
	TagMinnow = "Minnow"
	TagWinner = "Winner"
	TagLoser  = "Loser"
)

// UserAggregate - показатели одного игрока в рамках выборки
type UserAggregate struct {
	UserID      int64
	TotalBet    float64 // Сумма ставок по модулю
	TotalPayout float64 // Сумма выигрышей
	PnL         float64 // Сумма всех amount
	SpinCount   int     // Количество ставок
	RTP         float64 // (TotalPayout / TotalBet) * 100
	MaxWin      float64 // Максимальный из всех amount игрока
	Tags        []string
	GGRShare    GGRShare
}

// GGRShare - вклад игрока в общий GGR выборки
type GGRShare struct {
	Pct        float64
	Applicable bool // false, если общий GGR равен нулю
}

// UserOption - краткая строка игрока для списков выбора
type UserOption struct {
	UserID int64
	RTP    float64
	Spins  int
}

// JourneyPoint - точка кривой накопленного результата игрока.
// Ось X - порядковый номер транзакции, чтобы пропускать неактивное время
type JourneyPoint struct {
	Seq      int // Порядковый номер транзакции игрока, с 1
	At       time.Time
	GameID   int64
	Amount   float64
	CumPnL   float64
	Switched bool // Первая транзакция игрока в этой игре после смены
}

// PoolPoint - точка личного уровня пула
type PoolPoint struct {
	Seq  int
	At   time.Time
	Pool decimal.Decimal
}

// UserInsight - подробная сводка по одному игроку
type UserInsight struct {
	Aggregate UserAggregate
	Journey   []JourneyPoint
	PoolTrend []PoolPoint // Пусто, если в данных нет поля pool
}
