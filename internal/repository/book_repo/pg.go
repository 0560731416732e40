package book_repo

import (
	"context"
	"errors"
	"fmt"
	"slot_math/internal/model"
	"slot_math/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

const (
	table               = "books"
	colMode             = "mode"
	colID               = "id"
	colCriteria         = "criteria"
	colWin              = "win"
	colPayoutMultiple   = "payout_multiple"
	colPayoutMultiplier = "payout_multiplier"
	colBody             = "body"

	// Строк в одном INSERT, 7 параметров на строку
	insertChunk = 1000

	uniqueViolation = "23505"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	mode              TEXT             NOT NULL,
	id                INTEGER          NOT NULL,
	criteria          TEXT             NOT NULL,
	win               DOUBLE PRECISION NOT NULL,
	payout_multiple   DOUBLE PRECISION NOT NULL,
	payout_multiplier BIGINT           NOT NULL,
	body              JSONB            NOT NULL,
	PRIMARY KEY (mode, id)
)`

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type pgRepo struct {
	dbc       *pgxpool.Pool
	txManager trm.Manager
}

// NewPostgresBookRepository Book Store в Postgres. Пачка пишется в одной транзакции.
func NewPostgresBookRepository(dbc *pgxpool.Pool, txManager trm.Manager) repository.BookRepository {
	return &pgRepo{
		dbc:       dbc,
		txManager: txManager,
	}
}

// EnsureSchema создает таблицу books, если ее нет
func EnsureSchema(ctx context.Context, dbc *pgxpool.Pool) error {
	_, err := dbc.Exec(ctx, schema)
	return err
}

// AppendBatch - вставка пачки раундов. Повторный id откатывает всю пачку.
func (r *pgRepo) AppendBatch(ctx context.Context, mode string, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(txCtx, r.dbc)

		for start := 0; start < len(books); start += insertChunk {
			end := min(start+insertChunk, len(books))

			// Формируем запрос
			query := sq.Insert(table).
				Columns(colMode, colID, colCriteria, colWin, colPayoutMultiple, colPayoutMultiplier, colBody).
				PlaceholderFormat(sq.Dollar)
			for _, b := range books[start:end] {
				body, err := json.Marshal(&b)
				if err != nil {
					return fmt.Errorf("marshal book %d: %w", b.ID, err)
				}
				query = query.Values(mode, b.ID, b.Criteria, b.Win, b.PayoutMultiple, b.PayoutMultiplier, string(body))
			}

			sqlStr, args, err := query.ToSql()
			if err != nil {
				return err
			}
			if _, err = conn.Exec(txCtx, sqlStr, args...); err != nil {
				return err
			}
		}
		return nil
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("mode %s: %w", mode, model.ErrDuplicateID)
	}
	return err
}

// Books - все раунды режима по возрастанию id
func (r *pgRepo) Books(ctx context.Context, mode string) ([]model.Book, error) {
	query := sq.Select(colID, colCriteria, colWin, colPayoutMultiple, colBody).
		From(table).
		Where(sq.Eq{colMode: mode}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows, mode)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

// Book - раунд по id. ErrBookNotFound, если записи нет
func (r *pgRepo) Book(ctx context.Context, mode string, id int) (*model.Book, error) {
	query := sq.Select(colID, colCriteria, colWin, colPayoutMultiple, colBody).
		From(table).
		Where(sq.Eq{colMode: mode, colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	b, err := scanBook(conn.QueryRow(ctx, sqlStr, args...), mode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	return b, err
}

func (r *pgRepo) Modes(ctx context.Context) ([]string, error) {
	query := sq.Select(colMode).
		Distinct().
		From(table).
		OrderBy(colMode)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Reset - удаление раундов режима перед повторным прогоном
func (r *pgRepo) Reset(ctx context.Context, mode string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colMode: mode}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	_, err = conn.Exec(ctx, sqlStr, args...)
	return err
}

func scanBook(row pgx.Row, mode string) (*model.Book, error) {
	var (
		b    model.Book
		body []byte
	)
	if err := row.Scan(&b.ID, &b.Criteria, &b.Win, &b.PayoutMultiple, &body); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("unmarshal book %d: %w", b.ID, err)
	}
	b.Mode = mode
	return &b, nil
}
