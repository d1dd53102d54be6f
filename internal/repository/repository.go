package repository

import (
	"context"
	"time"

	"slotinsight_backend/internal/model"
)

// LedgerRepository - хранилище сырых транзакций в БД.
// Это граница загрузки данных, ядро аналитики с БД не работает
type LedgerRepository interface {
	InsertBatch(ctx context.Context, txs []model.Transaction) error
	DeleteAll(ctx context.Context) error
	GetAll(ctx context.Context) ([]model.Transaction, error)
}

// TransactionStore - набор транзакций одной сессии анализа.
// Сырой набор после загрузки не изменяется, фильтр пересчитывает срезы.
// Все геттеры возвращают копии
type TransactionStore interface {
	Load(txs []model.Transaction)
	SetFilter(f model.Filter)
	CurrentFilter() model.Filter

	All() []model.Transaction
	Filtered() []model.Transaction
	Sorted() []model.Transaction

	GameIDs() []int64
	Bounds() (min, max time.Time, ok bool)
}
