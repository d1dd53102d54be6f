package ingest

import (
	"context"
	"errors"
	"os"

	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	log "github.com/sirupsen/logrus"
)

type serv struct {
	session   service.SessionService
	ledger    repository.LedgerRepository
	txManager trm.Manager
}

// NewIngestService - загрузка игровых логов в сессию анализа
func NewIngestService(
	session service.SessionService,
	ledger repository.LedgerRepository,
	txManager trm.Manager,
) service.IngestService {
	return &serv{
		session:   session,
		ledger:    ledger,
		txManager: txManager,
	}
}

// ImportFile - разбирает CSV лог, перезаписывает леджер в БД одной
// транзакцией и загружает набор в сессию.
// Возвращает количество загруженных строк
func (s *serv) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.New("failed to open log file")
	}
	defer f.Close()

	txs, err := ParseCSV(f)
	if err != nil {
		return 0, err
	}

	// Очистка и вставка в одной транзакции: при сбое вставки
	// старый леджер остается нетронутым
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ledger.DeleteAll(txCtx); err != nil {
			log.Println(err)
			return errors.New("failed to clear ledger")
		}
		if err := s.ledger.InsertBatch(txCtx, txs); err != nil {
			log.Println(err)
			return errors.New("failed to insert ledger batch")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.session.ReplaceData(txs)
	log.WithFields(log.Fields{"file": path, "rows": len(txs)}).Info("ingest: file imported")
	return len(txs), nil
}

// LoadLedger - загружает в сессию весь леджер из БД
func (s *serv) LoadLedger(ctx context.Context) (int, error) {
	txs, err := s.ledger.GetAll(ctx)
	if err != nil {
		log.Println(err)
		return 0, errors.New("failed to read ledger")
	}

	s.session.ReplaceData(txs)
	log.WithField("rows", len(txs)).Info("ingest: ledger loaded")
	return len(txs), nil
}
