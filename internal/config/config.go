package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

// AnalyticsConfig - настройки аналитических расчетов
type AnalyticsConfig interface {
	// Пороги накопленных ставок для распределения игроков
	BetThresholds() []float64
	// Во сколько раз накопленная ставка должна превышать среднюю для тега Whale
	WhaleMultiplier() float64
	// Какая доля средней ставки дает тег Minnow
	MinnowMultiplier() float64
	// Верхние границы диапазонов кратности выигрыша Small, Big, Mega
	BandBounds() (small, big, mega float64)
}

// ReplayConfig - настройки временного воспроизведения
type ReplayConfig interface {
	// Количество точек временной сетки
	CheckpointCount() int
	// Задержка между кадрами для выбранной скорости
	SpeedDelay(speed string) time.Duration
}
