package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"

	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/model"
	"razorpay-checkout/internal/domain/ports/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func (r *OrderRepo) Save(ctx context.Context, qx repository.Tx, o *model.LocalOrder) error {
	const q = `
INSERT INTO orders (id, price, currency, customer_name, customer_email, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	_, err := execSQL(ctx, r.pool, qx, q,
		o.ID, o.Price, o.Currency, o.CustomerName, o.CustomerEmail, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrInvalidArgument
		}
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, qx repository.Tx, id string) (*model.LocalOrder, error) {
	q := `SELECT id, price, currency, customer_name, customer_email, status, created_at, updated_at FROM orders WHERE id=$1`
	if _, ok := qx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, qx, q, id)
	if err != nil {
		return nil, err
	}

	o := &model.LocalOrder{}
	if err := row.Scan(&o.ID, &o.Price, &o.Currency, &o.CustomerName, &o.CustomerEmail, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return o, nil
}

// TransitionFromPending is the compare-and-swap behind the single allowed
// status transition. The WHERE clause keeps a second callback from
// re-finalizing an already terminal order.
func (r *OrderRepo) TransitionFromPending(ctx context.Context, qx repository.Tx, id string, status model.OrderStatus) (bool, error) {
	if !status.Terminal() {
		return false, domain.ErrInvalidArgument
	}
	const q = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3;`
	tag, err := execSQL(ctx, r.pool, qx, q, id, status, model.OrderStatusPending)
	if err != nil {
		return false, fmt.Errorf("transition order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepo) AppendNote(ctx context.Context, qx repository.Tx, orderID, note string) error {
	const q = `INSERT INTO order_notes (id, order_id, note, created_at) VALUES ($1, $2, $3, $4);`
	_, err := execSQL(ctx, r.pool, qx, q, ulid.Make().String(), orderID, note, time.Now())
	if err != nil {
		return fmt.Errorf("append order note: %w", err)
	}
	return nil
}

func (r *OrderRepo) ListNotes(ctx context.Context, qx repository.Tx, orderID string) ([]*model.OrderNote, error) {
	const q = `SELECT id, order_id, note, created_at FROM order_notes WHERE order_id=$1 ORDER BY id;`
	rows, err := pickRows(ctx, r.pool, qx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*model.OrderNote
	for rows.Next() {
		n := &model.OrderNote{}
		if err := rows.Scan(&n.ID, &n.OrderID, &n.Note, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
