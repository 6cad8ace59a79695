package repository

import (
	"context"
	"errors"

	"StorefrontAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionPgRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionPgRepository(db *pgxpool.Pool) *SubscriptionPgRepository {
	return &SubscriptionPgRepository{DB: db}
}

const subscriptionColumns = `
	subscriptionid, stripesubscriptionid, stripecustomerid, status,
	amount, currency, billinginterval, intervalcount,
	currentperiodstart, currentperiodend, trialend, canceledat,
	createdat, updatedat
`

func (r *SubscriptionPgRepository) GetByID(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE subscriptionid=$1`, subscriptionID)
	return scanSubscription(row)
}

func (r *SubscriptionPgRepository) GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*model.Subscription, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE stripesubscriptionid=$1`, stripeSubscriptionID)
	return scanSubscription(row)
}

func (r *SubscriptionPgRepository) List(ctx context.Context) ([]model.Subscription, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY createdat DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

func (r *SubscriptionPgRepository) Save(ctx context.Context, sub *model.Subscription) error {
	q := `
		INSERT INTO subscriptions
			(subscriptionid, stripesubscriptionid, stripecustomerid, status,
			 amount, currency, billinginterval, intervalcount,
			 currentperiodstart, currentperiodend, trialend, canceledat,
			 createdat, updatedat)
		VALUES
			($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (stripesubscriptionid) DO UPDATE
		SET status=EXCLUDED.status,
		    amount=EXCLUDED.amount,
		    currency=EXCLUDED.currency,
		    billinginterval=EXCLUDED.billinginterval,
		    intervalcount=EXCLUDED.intervalcount,
		    currentperiodstart=EXCLUDED.currentperiodstart,
		    currentperiodend=EXCLUDED.currentperiodend,
		    trialend=EXCLUDED.trialend,
		    canceledat=EXCLUDED.canceledat,
		    updatedat=EXCLUDED.updatedat
	`
	_, err := r.DB.Exec(ctx, q,
		sub.SubscriptionID, sub.StripeSubscriptionID, sub.StripeCustomerID, sub.Status,
		sub.Amount, sub.Currency, sub.Interval, sub.IntervalCount,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.TrialEnd, sub.CanceledAt,
		sub.CreatedAt, sub.UpdatedAt,
	)
	return err
}

func scanSubscription(row pgRow) (*model.Subscription, error) {
	var s model.Subscription

	err := row.Scan(
		&s.SubscriptionID,
		&s.StripeSubscriptionID,
		&s.StripeCustomerID,
		&s.Status,
		&s.Amount,
		&s.Currency,
		&s.Interval,
		&s.IntervalCount,
		&s.CurrentPeriodStart,
		&s.CurrentPeriodEnd,
		&s.TrialEnd,
		&s.CanceledAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
