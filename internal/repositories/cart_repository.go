package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/google/uuid"
)

// CartRepository persists carts as one row with a JSONB items column. Writes are
// guarded by the row version so concurrent mutations never silently overwrite each other.
type CartRepository interface {
	GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
	DeleteCartByOwner(ctx context.Context, owner models.CartOwner) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartColumns = `id, user_id, guest_id, guest_name, guest_email, guest_phone, items, version, created_at, updated_at`

func ownerClause(owner models.CartOwner) (string, any) {
	if owner.UserID != nil {
		return "user_id = $1", *owner.UserID
	}

	return "guest_id = $1", owner.GuestID
}

func (r *cartRepository) GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	clause, arg := ownerClause(owner)
	query := `SELECT ` + cartColumns + ` FROM carts WHERE ` + clause

	cart := &models.Cart{}

	var (
		itemsJSON                                  []byte
		guestID, guestName, guestEmail, guestPhone sql.NullString
	)

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(&cart.ID, &cart.UserID, &guestID, &guestName, &guestEmail, &guestPhone,
		&itemsJSON, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	cart.GuestID = guestID.String
	cart.GuestName = guestName.String
	cart.GuestEmail = guestEmail.String
	cart.GuestPhone = guestPhone.String

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}

	return cart, nil
}

// CreateCart inserts a fresh cart at version 1. A concurrent insert for the same
// owner makes it return ErrCartExists.
func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (id, user_id, guest_id, guest_name, guest_email, guest_phone, items, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, NOW(), NOW())
		ON CONFLICT DO NOTHING
		RETURNING version, created_at, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID, nullString(cart.GuestID), nullString(cart.GuestName),
		nullString(cart.GuestEmail), nullString(cart.GuestPhone), itemsJSON).Scan(&cart.Version, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartExists
		}

		return fmt.Errorf("failed to insert cart: %w", err)
	}

	return nil
}

// SaveCart writes the items if the stored version still matches cart.Version and
// bumps it. A mismatch returns ErrStaleCart.
func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE carts
		SET items = $1, guest_name = $2, guest_email = $3, guest_phone = $4, version = version + 1, updated_at = NOW()
		WHERE id = $5 AND version = $6
		RETURNING version, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query, itemsJSON, nullString(cart.GuestName), nullString(cart.GuestEmail),
		nullString(cart.GuestPhone), cart.ID, cart.Version).Scan(&cart.Version, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStaleCart
		}

		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCartByOwner(ctx context.Context, owner models.CartOwner) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	clause, arg := ownerClause(owner)

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE `+clause, arg); err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	return nil
}

func marshalItems(items []models.CartLine) ([]byte, error) {
	if items == nil {
		items = []models.CartLine{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}

	return itemsJSON, nil
}
