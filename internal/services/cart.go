package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, owner models.CartOwner) (*models.CartSnapshot, error)
	AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.CartSnapshot, error)
	UpdateItem(ctx context.Context, owner models.CartOwner, lineID uuid.UUID, quantity int) (*models.CartSnapshot, error)
	RemoveItem(ctx context.Context, owner models.CartOwner, lineID uuid.UUID) (*models.CartSnapshot, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
	maxRetries  int
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository, maxRetries int) CartService {
	return &cartService{repo: repo, productRepo: productRepo, maxRetries: max(maxRetries, 1)}
}

// NewGuestCartID returns an id of the form guest_<unixnano>_<8 hex>.
func NewGuestCartID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("guest_%d_%s", time.Now().UnixNano(), suffix)
}

func lineNotFound() *errors.AppError {
	return errors.NotFoundError("Cart item not found").WithNumber(errors.NumCartLineNotFound)
}

func (s *cartService) GetCart(ctx context.Context, owner models.CartOwner) (*models.CartSnapshot, error) {

	if owner.IsGuest() && owner.GuestID == "" {
		return models.NewCartSnapshot(nil, owner), nil
	}

	cart, err := s.repo.GetCart(ctx, owner)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return models.NewCartSnapshot(nil, owner), nil
		}

		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return models.NewCartSnapshot(cart, owner), nil
}

func (s *cartService) AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.CartSnapshot, error) {

	if owner.IsGuest() && owner.GuestID == "" {
		owner.GuestID = NewGuestCartID()
		middleware.LoggerFromContext(ctx).Info("Issued guest cart id", slog.String("guestCartId", owner.GuestID))
	}

	cart, err := s.mutate(ctx, owner, true, func(cart *models.Cart) error {

		product, err := s.availableProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}

		idx, found := cart.LineByProduct(product.ID)

		existing := 0
		if found {
			existing = cart.Items[idx].Quantity
		}

		if req.Quantity > product.StockQuantity-existing {
			return errors.InsufficientStockError(fmt.Sprintf("Only %d of %s in stock", product.StockQuantity, product.Name))
		}

		// The line always takes the current name and price, also when re-adding.
		if found {
			line := &cart.Items[idx]
			line.Quantity += req.Quantity
			line.UnitPrice = product.SalePrice()
			line.ProductName = product.Name
			return nil
		}

		cart.Items = append(cart.Items, models.CartLine{
			ID:          uuid.New(),
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.SalePrice(),
			Quantity:    req.Quantity,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartSnapshot(cart, owner), nil
}

// UpdateItem overwrites the line quantity. A quantity of zero or less removes the line.
func (s *cartService) UpdateItem(ctx context.Context, owner models.CartOwner, lineID uuid.UUID, quantity int) (*models.CartSnapshot, error) {

	if quantity <= 0 {
		return s.RemoveItem(ctx, owner, lineID)
	}

	if err := requireGuestID(owner); err != nil {
		return nil, err
	}

	cart, err := s.mutate(ctx, owner, false, func(cart *models.Cart) error {

		idx, found := cart.LineByID(lineID)
		if !found {
			return lineNotFound()
		}

		product, err := s.availableProduct(ctx, cart.Items[idx].ProductID)
		if err != nil {
			return err
		}

		if quantity > product.StockQuantity {
			return errors.InsufficientStockError(fmt.Sprintf("Only %d of %s in stock", product.StockQuantity, product.Name))
		}

		cart.Items[idx].Quantity = quantity

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartSnapshot(cart, owner), nil
}

func (s *cartService) RemoveItem(ctx context.Context, owner models.CartOwner, lineID uuid.UUID) (*models.CartSnapshot, error) {

	if err := requireGuestID(owner); err != nil {
		return nil, err
	}

	cart, err := s.mutate(ctx, owner, false, func(cart *models.Cart) error {

		idx, found := cart.LineByID(lineID)
		if !found {
			return lineNotFound()
		}

		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewCartSnapshot(cart, owner), nil
}

// mutate runs apply against the freshest cart and stores the result with a
// version check, retrying when another writer got there first.
func (s *cartService) mutate(ctx context.Context, owner models.CartOwner, create bool, apply func(*models.Cart) error) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {

		cart, err := s.repo.GetCart(ctx, owner)
		isNew := false

		switch {
		case stdErrors.Is(err, sql.ErrNoRows):
			if !create {
				return nil, lineNotFound()
			}

			cart = &models.Cart{ID: uuid.New(), UserID: owner.UserID, GuestID: owner.GuestID, Items: []models.CartLine{}}
			isNew = true
		case err != nil:
			return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		if err := apply(cart); err != nil {
			return nil, err
		}

		if isNew {
			err = s.repo.CreateCart(ctx, cart)
		} else {
			err = s.repo.SaveCart(ctx, cart)
		}

		switch {
		case err == nil:
			return cart, nil
		case stdErrors.Is(err, repository.ErrCartExists), stdErrors.Is(err, repository.ErrStaleCart):
			logger.Debug("Cart write lost a race, retrying", slog.String("owner", owner.String()), slog.Int("attempt", attempt))
		default:
			return nil, errors.DatabaseError("Failed to save cart").WithError(err)
		}
	}

	logger.Warn("Cart update retries exhausted", slog.String("owner", owner.String()))

	return nil, errors.ConflictError("Cart was modified concurrently, please retry").WithNumber(errors.NumCartConflict)
}

func (s *cartService) availableProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ProductUnavailableError("Product is not available")
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if !product.IsActive {
		return nil, errors.ProductUnavailableError("Product is not available")
	}

	return product, nil
}

func requireGuestID(owner models.CartOwner) error {
	if owner.IsGuest() && owner.GuestID == "" {
		return errors.BadRequestError("Guest cart id is required").WithNumber(errors.NumGuestCartIDRequired)
	}

	return nil
}
