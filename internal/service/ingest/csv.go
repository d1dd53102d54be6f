package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"slotinsight_backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Обязательные колонки лога. Колонки id и pool необязательные:
// без id строка получает сгенерированный, без pool отключаются
// только представления пула
var requiredColumns = []string{"create_date", "user_id", "gid", "amount"}

// Принимаемые форматы времени
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCSV - разбирает CSV лог в нормализованные транзакции.
// Кривые строки - ошибка разбора: ядро аналитики получает
// только типизированные данные
func ParseCSV(r io.Reader) ([]model.Transaction, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	idCol, hasID := columns["id"]
	poolCol, hasPool := columns["pool"]

	var txs []model.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		t := model.Transaction{}

		if hasID {
			t.ID = record[idCol]
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}

		t.CreateDate, err = parseTime(record[columns["create_date"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid create_date %q", line, record[columns["create_date"]])
		}

		t.UserID, err = strconv.ParseInt(record[columns["user_id"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid user_id %q", line, record[columns["user_id"]])
		}

		t.GameID, err = strconv.ParseInt(record[columns["gid"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid gid %q", line, record[columns["gid"]])
		}

		// Сумму разбираем как точное десятичное число,
		// чтобы не потерять копейки на строках вида "100.10"
		amount, err := decimal.NewFromString(record[columns["amount"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", line, record[columns["amount"]])
		}
		t.Amount = amount.InexactFloat64()

		if hasPool && record[poolCol] != "" {
			raw, err := strconv.ParseInt(record[poolCol], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid pool %q", line, record[poolCol])
			}
			// Поле pool приходит целым числом со сдвигом на 2 знака
			t.Pool = decimal.New(raw, -2)
			t.HasPool = true
		}

		txs = append(txs, t)
	}

	return txs, nil
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", value)
}
