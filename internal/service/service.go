package service

import (
	"context"
	"time"

	"slotinsight_backend/internal/model"
)

// SessionService - управление текущей сессией анализа:
// загрузка набора, фильтр, сырые данные
type SessionService interface {
	ReplaceData(txs []model.Transaction)
	SetFilter(f model.Filter)
	Filter() model.Filter
	GameIDs() []int64
	RawDetail() []model.Transaction
}

// IngestService - граница загрузки данных.
// Разбор файлов и работа с БД происходят только здесь
type IngestService interface {
	ImportFile(ctx context.Context, path string) (int, error)
	LoadLedger(ctx context.Context) (int, error)
}

type KPIService interface {
	Report() *model.KPIReport
}

type CohortService interface {
	Report() *model.CohortReport
}

type GameService interface {
	Stats() []model.GameAggregate
}

type SegmentService interface {
	Users() []model.UserOption
	Aggregate(userID int64) (*model.UserAggregate, error)
	Insight(userID int64) (*model.UserInsight, error)
}

// ReplayService - временное воспроизведение накопленных результатов игроков.
// Состояние сессии (индекс, флаг воспроизведения) живет до смены фильтра
type ReplayService interface {
	Checkpoints() []model.Checkpoint
	Snapshot(index int) (*model.Snapshot, error)
	SnapshotAtTime(at time.Time) (*model.Snapshot, error)
	Current() (*model.Snapshot, error)

	Play(speed model.PlaybackSpeed) error
	Pause()
	Seek(index int) error
	State() (index int, playing bool)

	// Reset сбрасывает сессию воспроизведения, вызывается при смене фильтра
	Reset()
}
