package repository

import (
	"context"
	"encoding/json"
	"errors"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderPgRepository is the transactional drop-in for the file store. The
// unique index on stripesessionid makes a duplicate concurrent insert for
// the same session fail instead of producing a second order.
type OrderPgRepository struct {
	DB *pgxpool.Pool
}

func NewOrderPgRepository(db *pgxpool.Pool) *OrderPgRepository {
	return &OrderPgRepository{DB: db}
}

const orderColumns = `
	orderid, stripesessionid, paymentintentid, status,
	customer, items, shipping, subtotal, total, currency, metadata,
	createdat, updatedat
`

func (r *OrderPgRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE orderid=$1`, orderID)
	return scanOrder(row)
}

func (r *OrderPgRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE stripesessionid=$1`, sessionID)
	return scanOrder(row)
}

func (r *OrderPgRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY createdat DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *OrderPgRepository) Save(ctx context.Context, order *model.Order) error {
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return err
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	var shipping []byte
	if order.Shipping != nil {
		if shipping, err = json.Marshal(order.Shipping); err != nil {
			return err
		}
	}
	var metadata []byte
	if order.Metadata != nil {
		if metadata, err = json.Marshal(order.Metadata); err != nil {
			return err
		}
	}

	q := `
		INSERT INTO orders
			(orderid, stripesessionid, paymentintentid, status,
			 customer, items, shipping, subtotal, total, currency, metadata,
			 createdat, updatedat)
		VALUES
			($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (orderid) DO UPDATE
		SET paymentintentid=EXCLUDED.paymentintentid,
		    status=EXCLUDED.status,
		    customer=EXCLUDED.customer,
		    items=EXCLUDED.items,
		    shipping=EXCLUDED.shipping,
		    subtotal=EXCLUDED.subtotal,
		    total=EXCLUDED.total,
		    currency=EXCLUDED.currency,
		    metadata=EXCLUDED.metadata,
		    updatedat=EXCLUDED.updatedat
	`
	_, err = r.DB.Exec(ctx, q,
		order.OrderID, order.StripeSessionID, order.PaymentIntentID, order.Status,
		customer, items, shipping, order.Subtotal, order.Total, order.Currency, metadata,
		order.CreatedAt, order.UpdatedAt,
	)
	return err
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanOrder(row pgRow) (*model.Order, error) {
	var o model.Order
	var customer, items []byte
	var shipping, metadata []byte

	err := row.Scan(
		&o.OrderID,
		&o.StripeSessionID,
		&o.PaymentIntentID,
		&o.Status,
		&customer,
		&items,
		&shipping,
		&o.Subtotal,
		&o.Total,
		&o.Currency,
		&metadata,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
			return nil, err
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &o.Metadata); err != nil {
			return nil, err
		}
	}
	return &o, nil
}
