package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rockalpatio/internal/store"
	"rockalpatio/pkg/logger"
	"rockalpatio/pkg/metrics"
	"rockalpatio/pkg/otel"
	"rockalpatio/pkg/outbox"
	"rockalpatio/pkg/trace"
)

type entity interface {
	EntityID() int64
}

// mapping 描述一个实体与其表之间的列映射
type mapping[T any] struct {
	table string
	// 插入时写入的列，顺序与 values 一致
	columns []string
	values  func(row *T) []any
	// 扫描目标：id, columns..., created_at
	dest func(row *T) []any
	// 允许单独修改的列
	updatable map[string]bool
}

func (m mapping[T]) selectSQL() string {
	return fmt.Sprintf(
		"SELECT id, %s, created_at FROM %s ORDER BY created_at DESC, id DESC",
		strings.Join(m.columns, ", "), m.table,
	)
}

func (m mapping[T]) insertSQL() string {
	placeholders := make([]string, len(m.columns))
	for i := range m.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at",
		m.table, strings.Join(m.columns, ", "), strings.Join(placeholders, ", "),
	)
}

// Table 是 store.Table 的 PostgreSQL 实现。每次写入都在同一事务里
// 追加一条 outbox 变更事件。
type Table[T entity] struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
	m      mapping[T]
	logger *zap.Logger
}

func newTable[T entity](db *pgxpool.Pool, events *outbox.Repository, m mapping[T], logger *zap.Logger) *Table[T] {
	return &Table[T]{db: db, outbox: events, m: m, logger: logger}
}

func (t *Table[T]) Name() string { return t.m.table }

// Select returns every row, newest first.
func (t *Table[T]) Select(ctx context.Context) ([]T, error) {
	var out []T
	err := t.observe(ctx, "select", func(ctx context.Context) error {
		rows, err := t.db.Query(ctx, t.m.selectSQL())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row T
			if err := rows.Scan(t.m.dest(&row)...); err != nil {
				return err
			}
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Insert writes row and fills in its id and created_at.
func (t *Table[T]) Insert(ctx context.Context, row *T) error {
	return t.observe(ctx, "insert", func(ctx context.Context) error {
		tx, err := t.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		dest := t.m.dest(row)
		if err := tx.QueryRow(ctx, t.m.insertSQL(), t.m.values(row)...).Scan(dest[0], dest[len(dest)-1]); err != nil {
			return err
		}

		id := (*row).EntityID()
		payload := outbox.ChangePayload{
			Table:      t.m.table,
			ID:         id,
			Value:      row,
			TraceID:    trace.FromContext(ctx),
			OccurredAt: time.Now().UTC(),
		}
		if err := outbox.InsertEventInTx(ctx, tx, t.outbox, t.m.table, &id, outbox.CreatedKey(t.m.table), payload); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
}

// Update writes patch to the row with the given id. Only whitelisted
// columns may be patched.
func (t *Table[T]) Update(ctx context.Context, id int64, patch store.Patch) error {
	query, args, fields, err := buildUpdate(t.m.table, t.m.updatable, id, patch)
	if err != nil {
		return &store.Error{Kind: store.KindInvalid, Op: "update", Table: t.m.table, Err: err}
	}

	return t.observe(ctx, "update", func(ctx context.Context) error {
		tx, err := t.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return store.ErrNotFound
		}

		now := time.Now().UTC()
		for _, f := range fields {
			payload := outbox.ChangePayload{
				Table:      t.m.table,
				ID:         id,
				Field:      f,
				Value:      patch[f],
				TraceID:    trace.FromContext(ctx),
				OccurredAt: now,
			}
			if err := outbox.InsertEventInTx(ctx, tx, t.outbox, t.m.table, &id, outbox.UpdatedKey(t.m.table), payload); err != nil {
				return err
			}
		}
		return tx.Commit(ctx)
	})
}

// observe 为一次表操作统一记录 span、耗时和日志，并对错误分类
func (t *Table[T]) observe(ctx context.Context, op string, fn func(context.Context) error) error {
	log := logger.WithTrace(ctx, t.logger)
	start := time.Now()

	err := otel.Traced(ctx, op, t.m.table, fn)
	metrics.RecordDBQueryDuration(op, t.m.table, time.Since(start))
	if err != nil {
		err = store.Wrap(op, t.m.table, err)
		log.Error("DB operation failed",
			zap.String("table", t.m.table),
			zap.String("op", op),
			zap.Error(err),
		)
		return err
	}

	log.Debug("DB operation done",
		zap.String("table", t.m.table),
		zap.String("op", op),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
