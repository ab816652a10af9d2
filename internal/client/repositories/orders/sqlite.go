// Package orders keeps the local history of orders placed from this device.
package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/dmitrijs2005/giftshop/internal/dbx"
)

type Repository interface {
	Save(ctx context.Context, rec models.OrderRecord) error
	ListByEmail(ctx context.Context, email string, limit int) ([]models.OrderRecord, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save writes the order and its receivers atomically.
func (r *SQLiteRepository) Save(ctx context.Context, rec models.OrderRecord) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (order_id, orderer_email, orderer_name, product_id, product_name,
				message_card_id, message, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.OrderID, rec.OrdererEmail, rec.OrdererName, rec.ProductID, rec.ProductName,
			rec.MessageCardID, rec.Message, rec.Status, rec.CreatedAt.UnixNano())
		if err != nil {
			return err
		}

		ref, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for i, rc := range rec.Receivers {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_receivers (order_ref, position, name, phone_number, quantity)
				VALUES (?, ?, ?, ?, ?)`, ref, i, rc.Name, rc.PhoneNumber, rc.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save order[%s]: %w", rec.OrderID, err)
	}
	return nil
}

// ListByEmail returns up to limit orders of one user, newest first.
// A non-positive limit means no limit.
func (r *SQLiteRepository) ListByEmail(ctx context.Context, email string, limit int) ([]models.OrderRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.order_id, o.orderer_email, o.orderer_name, o.product_id, o.product_name,
			o.message_card_id, o.message, o.status, o.created_at,
			rc.name, rc.phone_number, rc.quantity
		FROM (SELECT * FROM orders WHERE orderer_email = ? ORDER BY created_at DESC, id DESC LIMIT ?) o
		LEFT JOIN order_receivers rc ON rc.order_ref = o.id
		ORDER BY o.created_at DESC, o.id DESC, rc.position`, email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	result := make([]models.OrderRecord, 0)
	lastRef := int64(-1)
	for rows.Next() {
		var (
			ref       int64
			rec       models.OrderRecord
			createdAt int64
			name      sql.NullString
			phone     sql.NullString
			qty       sql.NullInt64
		)
		if err := rows.Scan(&ref, &rec.OrderID, &rec.OrdererEmail, &rec.OrdererName, &rec.ProductID,
			&rec.ProductName, &rec.MessageCardID, &rec.Message, &rec.Status, &createdAt,
			&name, &phone, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		if ref != lastRef {
			rec.CreatedAt = time.Unix(0, createdAt).UTC()
			result = append(result, rec)
			lastRef = ref
		}
		if name.Valid {
			cur := &result[len(result)-1]
			cur.Receivers = append(cur.Receivers, models.OrderReceiver{
				Name:        name.String,
				PhoneNumber: phone.String,
				Quantity:    int(qty.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	return result, nil
}
