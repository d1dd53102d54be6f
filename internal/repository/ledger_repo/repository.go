package ledger_repo

import (
	"context"
	"errors"
	"time"

	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table         = "game_ledger"
	colID         = "id"
	colCreateDate = "create_date"
	colUserID     = "user_id"
	colGameID     = "gid"
	colAmount     = "amount"
	colPool       = "pool"
)

// Вставка режется на части, чтобы не упереться в лимит параметров запроса
const insertChunkSize = 1000

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLedgerRepository(dbc *pgxpool.Pool) repository.LedgerRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// InsertBatch - вставляет пакет транзакций в леджер.
// Поле pool пишется как целое со сдвигом на 2 знака, NULL если пула нет
func (r *repo) InsertBatch(ctx context.Context, txs []model.Transaction) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	for start := 0; start < len(txs); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(txs) {
			end = len(txs)
		}

		// Формируем запрос
		query := sq.Insert(table).
			Columns(colID, colCreateDate, colUserID, colGameID, colAmount, colPool).
			PlaceholderFormat(sq.Dollar)

		for _, t := range txs[start:end] {
			var poolRaw *int64
			if t.HasPool {
				raw := t.Pool.Shift(2).IntPart()
				poolRaw = &raw
			}
			query = query.Values(t.ID, t.CreateDate, t.UserID, t.GameID, t.Amount, poolRaw)
		}

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteAll - очищает леджер перед загрузкой нового файла
func (r *repo) DeleteAll(ctx context.Context) error {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Delete(table)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetAll - читает весь леджер по возрастанию времени
func (r *repo) GetAll(ctx context.Context) ([]model.Transaction, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	// Формируем запрос
	query := sq.Select(colID, colCreateDate, colUserID, colGameID, colAmount, colPool).
		From(table).
		OrderBy(colCreateDate).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sqlStr, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []model.Transaction{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var (
			t          model.Transaction
			createDate time.Time
			poolRaw    *int64
		)
		if err := rows.Scan(&t.ID, &createDate, &t.UserID, &t.GameID, &t.Amount, &poolRaw); err != nil {
			return nil, err
		}
		t.CreateDate = createDate
		if poolRaw != nil {
			t.Pool = decimal.New(*poolRaw, -2)
			t.HasPool = true
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}
