package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order, cart *models.Cart) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByMerchantOID(ctx context.Context, merchantOID string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error)
	UpdateOrderState(ctx context.Context, order *models.Order, expected models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, merchant_oid, user_id, guest_id, customer_name, customer_email, customer_phone,
		shipping_address, billing_address, total_amount, refunded_amount, status, tracking_number,
		shipping_carrier, cancellation_reason, return_reason, failure_reason, resolution_note, shipped_at,
		delivered_at, created_at, updated_at`

// CreateOrder stores the order with its lines and consumes the cart it was built
// from in a single transaction. The cart delete is version-guarded: if the cart
// changed since it was read, nothing is written and ErrStaleCart is returned.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order, cart *models.Cart) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `
		INSERT INTO orders (id, merchant_oid, user_id, guest_id, customer_name, customer_email, customer_phone,
			shipping_address, billing_address, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query, order.ID, order.MerchantOID, order.UserID, nullString(order.GuestID), order.CustomerName,
		order.CustomerEmail, order.CustomerPhone, order.ShippingAddress, order.BillingAddress, order.TotalAmount, order.Status).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	for _, item := range order.Items {
		if _, err := tx.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	result, err := tx.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1 AND version = $2`, cart.ID, cart.Version)
	if err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return ErrStaleCart
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.getOrder(ctx, "id = $1", id)
}

func (r *orderRepository) GetOrderByMerchantOID(ctx context.Context, merchantOID string) (*models.Order, error) {
	return r.getOrder(ctx, "merchant_oid = $1", merchantOID)
}

func (r *orderRepository) getOrder(ctx context.Context, clause string, arg any) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + clause

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}

		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	return r.ListOrders(ctx, models.OrderFilter{UserID: &userID, IncludeClosed: true, Page: page, PageSize: size})
}

// ListOrders applies the filter and returns one page, newest first unless SortAsc is set.
// Delivered, cancelled and failed orders are left out unless IncludeClosed is set or the filter asks for a status.
func (r *orderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		conditions []string
		args       []any
	)

	addCondition := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if filter.Status != nil {
		addCondition("status = $%d", *filter.Status)
	} else if !filter.IncludeClosed {
		for _, closed := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusFailed} {
			addCondition("status <> $%d", closed)
		}
	}

	if filter.UserID != nil {
		addCondition("user_id = $%d", *filter.UserID)
	}

	if filter.From != nil {
		addCondition("created_at >= $%d", *filter.From)
	}

	if filter.To != nil {
		addCondition("created_at <= $%d", *filter.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	order := "DESC"
	if filter.SortAsc {
		order = "ASC"
	}

	offset := (filter.Page - 1) * filter.PageSize
	limitArgs := append(args, filter.PageSize, offset)

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at %s LIMIT $%d OFFSET $%d`,
		orderColumns, where, order, len(args)+1, len(args)+2)

	rows, err := r.DB.QueryContext(dbCtx, query, limitArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return orders, total, nil
}

// UpdateOrderState writes the mutable order fields only if the stored status still
// equals expected. Otherwise ErrStaleOrder is returned and nothing changes.
func (r *orderRepository) UpdateOrderState(ctx context.Context, order *models.Order, expected models.OrderStatus) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, tracking_number = $2, shipping_carrier = $3, cancellation_reason = $4, return_reason = $5,
			failure_reason = $6, resolution_note = $7, refunded_amount = $8, shipped_at = $9, delivered_at = $10,
			updated_at = NOW()
		WHERE id = $11 AND status = $12
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, order.Status, order.TrackingNumber, order.ShippingCarrier, order.CancellationReason,
		order.ReturnReason, order.FailureReason, order.ResolutionNote, order.RefundedAmount, order.ShippedAt, order.DeliveredAt,
		order.ID, expected).
		Scan(&order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStaleOrder
		}

		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var guestID sql.NullString

	err := row.Scan(&order.ID, &order.MerchantOID, &order.UserID, &guestID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.ShippingAddress, &order.BillingAddress, &order.TotalAmount, &order.RefundedAmount, &order.Status, &order.TrackingNumber,
		&order.ShippingCarrier, &order.CancellationReason, &order.ReturnReason, &order.FailureReason, &order.ResolutionNote,
		&order.ShippedAt, &order.DeliveredAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	order.GuestID = guestID.String

	return order, nil
}
