package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartSummary, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, lineID string) (*models.CartSummary, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartSummary, error)
	SetVisibility(ctx context.Context, userID uuid.UUID, visible bool) error
	Clear(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error)
}

type cartService struct {
	repo    repository.CartRepository
	catalog *catalog.Catalog
}

func NewCartService(repo repository.CartRepository, cat *catalog.Catalog) CartService {
	return &cartService{repo: repo, catalog: cat}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	return s.summarize(ctx, cart), nil
}

// AddItem merges into an existing line when the (product, variant) pair
// matches; an empty variant only ever merges with an empty variant.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartSummary, error) {

	if req.Quantity < 1 {
		return nil, errors.ValidationError("Quantity must be a positive integer")
	}

	if _, ok := s.catalog.Lookup(req.ProductID); !ok {
		return nil, errors.NotFoundError("Product not found in catalog")
	}

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	if idx := cart.FindLine(req.ProductID, req.Variant); idx >= 0 {
		cart.Lines[idx].Quantity += req.Quantity
	} else {
		cart.Lines = append(cart.Lines, models.CartLine{
			ID:        newLineID(),
			ProductID: req.ProductID,
			Variant:   req.Variant,
			Quantity:  req.Quantity,
		})
	}

	cart.UpdatedAt = time.Now()
	s.persist(ctx, cart)

	return s.summarize(ctx, cart), nil
}

// RemoveItem deletes the line if present; removing an unknown line is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, lineID string) (*models.CartSummary, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	if idx := cart.FindLineByID(lineID); idx >= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
		cart.UpdatedAt = time.Now()
		s.persist(ctx, cart)
	}

	return s.summarize(ctx, cart), nil
}

// SetQuantity overwrites the line quantity; zero or below removes the line.
func (s *cartService) SetQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartSummary, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	idx := cart.FindLineByID(req.LineID)
	if idx < 0 {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	if req.Quantity <= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		cart.Lines[idx].Quantity = req.Quantity
	}

	cart.UpdatedAt = time.Now()
	s.persist(ctx, cart)

	return s.summarize(ctx, cart), nil
}

func (s *cartService) SetVisibility(ctx context.Context, userID uuid.UUID, visible bool) error {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return errors.StorageError("Failed to load cart").WithError(err)
	}

	cart.Visible = visible
	s.persist(ctx, cart)

	return nil
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	cart.Lines = []models.CartLine{}
	cart.UpdatedAt = time.Now()
	s.persist(ctx, cart)

	return s.summarize(ctx, cart), nil
}

// persist is write-through: every mutation overwrites the snapshot. A failed
// write is logged and swallowed; the in-memory state stays authoritative for
// the session.
func (s *cartService) persist(ctx context.Context, cart *models.Cart) {

	if err := s.repo.Save(ctx, cart); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to persist cart snapshot",
			slog.String("userId", cart.UserID.String()), slog.String("error", err.Error()))
	}
}

func (s *cartService) summarize(ctx context.Context, cart *models.Cart) *models.CartSummary {

	summary := &models.CartSummary{
		Lines:     []models.PricedLine{},
		UpdatedAt: cart.UpdatedAt,
	}

	for _, line := range cart.Lines {

		product, ok := s.catalog.Lookup(line.ProductID)
		if !ok {
			// catalog rotation can orphan a snapshot line
			middleware.LoggerFromContext(ctx).Warn("Dropping cart line for unknown product",
				slog.Int("productId", line.ProductID))

			continue
		}

		unit := catalog.UnitPrice(product, line.Variant)
		original := catalog.OriginalUnitPrice(product, line.Variant)

		summary.Lines = append(summary.Lines, models.PricedLine{
			CartLine:      line,
			Name:          product.Name,
			UnitPrice:     unit,
			OriginalPrice: original,
			LineTotal:     unit * float64(line.Quantity),
		})

		summary.ItemCount += line.Quantity
		summary.TotalPrice += unit * float64(line.Quantity)
		summary.TotalDiscount += (original - unit) * float64(line.Quantity)
	}

	return summary
}

// newLineID is time-ordered with a random tiebreaker so concurrent adds never
// collide.
func newLineID() string {

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return id.String()
}
