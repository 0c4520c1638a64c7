package postgres

import (
	"context"
	"database/sql"

	"github.com/course-microservice/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type txKey struct{}

// executor - общий срез sqlx.DB и sqlx.Tx, которым пользуются репозитории
type executor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// txManager выполняет функцию в одной транзакции. Транзакция кладётся в
// контекст; репозитории достают её через executorFrom и все записи внутри
// fn либо фиксируются вместе, либо откатываются вместе.
type txManager struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTxManager(db *DB) repository.TxManager {
	return &txManager{
		db:     db.DB,
		logger: db.logger,
	}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов продолжает уже открытую транзакцию
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		m.logger.Error("Failed to begin transaction", zap.Error(err))
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.logger.Error("Failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		m.logger.Error("Failed to commit transaction", zap.Error(err))
		return err
	}
	return nil
}

func txFrom(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// executorFrom возвращает транзакцию из контекста, если операция
// выполняется внутри WithinTx, иначе - пул соединений
func executorFrom(ctx context.Context, db *sqlx.DB) executor {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return db
}
