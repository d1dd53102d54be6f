package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_FullRow(t *testing.T) {
	data := strings.Join([]string{
		"id,create_date,user_id,gid,amount,pool",
		"tx-1,2024-03-01 12:00:00,10,7,-100.10,250050",
		"tx-2,2024-03-01T12:05:00Z,10,7,150,",
	}, "\n")

	txs, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	first := txs[0]
	assert.Equal(t, "tx-1", first.ID)
	assert.Equal(t, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), first.CreateDate)
	assert.Equal(t, int64(10), first.UserID)
	assert.Equal(t, int64(7), first.GameID)
	assert.Equal(t, -100.10, first.Amount)
	require.True(t, first.HasPool)
	// Пул приходит целым со сдвигом на два знака
	assert.True(t, first.Pool.Equal(decimal.New(250050, -2)))

	// Пустое значение пула не включает пул для строки
	assert.False(t, txs[1].HasPool)
}

func TestParseCSV_GeneratesMissingIDs(t *testing.T) {
	data := strings.Join([]string{
		"create_date,user_id,gid,amount",
		"2024-03-01,10,7,-100",
		"2024-03-02,10,7,-100",
	}, "\n")

	txs, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.NotEmpty(t, txs[0].ID)
	assert.NotEmpty(t, txs[1].ID)
	assert.NotEqual(t, txs[0].ID, txs[1].ID)
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	data := "create_date,user_id,amount\n2024-03-01,10,-100\n"

	_, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "gid"`)
}

func TestParseCSV_RowErrorsCarryLineNumber(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{name: "bad date", row: "03/01/2024,10,7,-100", want: "row 2: invalid create_date"},
		{name: "bad user_id", row: "2024-03-01,abc,7,-100", want: "row 2: invalid user_id"},
		{name: "bad gid", row: "2024-03-01,10,x,-100", want: "row 2: invalid gid"},
		{name: "bad amount", row: "2024-03-01,10,7,oops", want: "row 2: invalid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "create_date,user_id,gid,amount\n" + tt.row + "\n"
			_, err := ParseCSV(strings.NewReader(data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCSV_BadPool(t *testing.T) {
	data := "create_date,user_id,gid,amount,pool\n2024-03-01,10,7,-100,1.5\n"

	_, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pool")
}

func TestParseCSV_EmptyFileWithHeader(t *testing.T) {
	txs, err := ParseCSV(strings.NewReader("create_date,user_id,gid,amount\n"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}
