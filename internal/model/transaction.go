package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Метки типа транзакции. Тип определяется только знаком amount,
// отдельному полю типа из источника не доверяем
const (
	TypeBet = "Bet"
	TypeWin = "Win"
)

// Transaction - одна строка игрового лога.
// После загрузки в сессию не изменяется
type Transaction struct {
	ID         string
	CreateDate time.Time
	UserID     int64
	GameID     int64
	Amount     float64         // Отрицательное - ставка, положительное - выигрыш
	Pool       decimal.Decimal // Пул = pool_raw / 100
	HasPool    bool            // Было ли поле pool в источнике
}

// TypeLabel - метка типа для отображения сырых данных.
// Нулевая сумма не считается ни ставкой, ни выигрышем
func (t Transaction) TypeLabel() string {
	switch {
	case t.Amount < 0:
		return TypeBet
	case t.Amount > 0:
		return TypeWin
	default:
		return ""
	}
}

// DateKey - календарная дата транзакции в формате YYYY-MM-DD
func (t Transaction) DateKey() string {
	return t.CreateDate.Format("2006-01-02")
}

// Filter - фильтр одной сессии анализа
type Filter struct {
	From    time.Time          // Начало диапазона дат (включительно), нулевое значение - без ограничения
	To      time.Time          // Конец диапазона дат (включительно), нулевое значение - без ограничения
	GameIDs map[int64]struct{} // Выбранные игры, nil - все игры
}

// Match - попадает ли транзакция под фильтр.
// Даты сравниваются по календарному дню
func (f Filter) Match(t Transaction) bool {
	d := truncateToDay(t.CreateDate)
	if !f.From.IsZero() && d.Before(truncateToDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && d.After(truncateToDay(f.To)) {
		return false
	}
	if f.GameIDs != nil {
		if _, ok := f.GameIDs[t.GameID]; !ok {
			return false
		}
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
