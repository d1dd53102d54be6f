package model

import "time"

// Checkpoint - точка равномерной временной сетки воспроизведения
type Checkpoint struct {
	Index int
	At    time.Time
}

// PlayerPoint - накопленное состояние игрока на момент среза
type PlayerPoint struct {
	UserID int64
	CumBet float64 // Накопленная ставка по модулю
	CumPnL float64 // Накопленный результат
	Status string  // Winner, если CumPnL > 0, иначе Loser
}

// AxisBounds - границы осей, фиксированные на всю сессию воспроизведения.
// Считаются один раз по финальному состоянию всего окна,
// чтобы график не масштабировался между кадрами
type AxisBounds struct {
	XMax float64
	YMin float64
	YMax float64
}

// Snapshot - состояние всех игроков на момент времени
type Snapshot struct {
	Index   int // Индекс чекпоинта, -1 для произвольного времени
	At      time.Time
	Players []PlayerPoint
	Bounds  AxisBounds
}

// PlaybackSpeed - скорость воспроизведения
type PlaybackSpeed string

const (
	SpeedSlow   PlaybackSpeed = "slow"
	SpeedNormal PlaybackSpeed = "normal"
	SpeedFast   PlaybackSpeed = "fast"
)
