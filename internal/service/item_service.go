package service

import (
	"context"
	"fmt"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
	"github.com/4ugusta/chaibooks-backend/internal/model"
	"github.com/4ugusta/chaibooks-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	HSNCode       string `json:"hsn_code"`
	Unit          string `json:"unit"`
	PurchasePrice string `json:"purchase_price"`
	SellingPrice  string `json:"selling_price" binding:"required"`
	GSTRate       string `json:"gst_rate" binding:"required"`
	StockQuantity string `json:"stock_quantity"`
	MinStockLevel string `json:"min_stock_level"`
}

type UpdateItemRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	HSNCode       *string `json:"hsn_code"`
	Unit          *string `json:"unit"`
	PurchasePrice *string `json:"purchase_price"`
	SellingPrice  *string `json:"selling_price"`
	GSTRate       *string `json:"gst_rate"`
	MinStockLevel *string `json:"min_stock_level"`
	IsActive      *bool   `json:"is_active"`
}

type AdjustStockRequest struct {
	// Signed delta in the item's unit: positive restocks, negative writes off.
	Delta  string `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

type ItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	HSNCode       string `json:"hsn_code"`
	Unit          string `json:"unit"`
	PurchasePrice string `json:"purchase_price"`
	SellingPrice  string `json:"selling_price"`
	GSTRate       string `json:"gst_rate"`
	StockQuantity string `json:"stock_quantity"`
	MinStockLevel string `json:"min_stock_level"`
	LowStock      bool   `json:"low_stock"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

// --- Interface ---

type ItemService interface {
	CreateItem(ctx context.Context, req CreateItemRequest, userID *uuid.UUID) (ItemResponse, error)
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest, userID *uuid.UUID) (ItemResponse, error)
	DeleteItem(ctx context.Context, id string, userID *uuid.UUID) error
	GetItemByID(ctx context.Context, id string) (ItemResponse, error)
	ListItems(ctx context.Context, search string, page, limit int) ([]ItemResponse, int64, error)
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest, userID *uuid.UUID) (ItemResponse, error)
	ListLowStock(ctx context.Context) ([]ItemResponse, error)
}

type itemService struct {
	repo      repository.ItemRepository
	txManager repository.TransactionManager
	audit     AuditService
}

func NewItemService(repo repository.ItemRepository, txManager repository.TransactionManager, audit AuditService) ItemService {
	return &itemService{repo: repo, txManager: txManager, audit: audit}
}

// --- Implementation ---

func (s *itemService) CreateItem(ctx context.Context, req CreateItemRequest, userID *uuid.UUID) (ItemResponse, error) {
	gstRate, err := decimal.NewFromString(req.GSTRate)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid gst_rate: %w", err)
	}
	if !billing.ValidTaxRate(gstRate) {
		return ItemResponse{}, fmt.Errorf("gst_rate %s is not a recognized slab", gstRate.String())
	}

	sellingPrice, err := decimal.NewFromString(req.SellingPrice)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid selling_price: %w", err)
	}
	if sellingPrice.IsNegative() {
		return ItemResponse{}, fmt.Errorf("selling_price must not be negative")
	}

	purchasePrice, err := parseOptionalDecimal(req.PurchasePrice)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid purchase_price: %w", err)
	}
	stockQuantity, err := parseOptionalDecimal(req.StockQuantity)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid stock_quantity: %w", err)
	}
	minStockLevel, err := parseOptionalDecimal(req.MinStockLevel)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid min_stock_level: %w", err)
	}

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}

	item := &model.Item{
		Name:          req.Name,
		Description:   req.Description,
		HSNCode:       req.HSNCode,
		Unit:          unit,
		PurchasePrice: purchasePrice,
		SellingPrice:  sellingPrice,
		GSTRate:       gstRate,
		StockQuantity: stockQuantity,
		MinStockLevel: minStockLevel,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return ItemResponse{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionCreateItem, item.ID.String(), item.Name, req)

	return toItemResponse(item), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req UpdateItemRequest, userID *uuid.UUID) (ItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("item not found: %w", err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.HSNCode != nil {
		item.HSNCode = *req.HSNCode
	}
	if req.Unit != nil && *req.Unit != "" {
		item.Unit = *req.Unit
	}
	if req.PurchasePrice != nil {
		price, parseErr := decimal.NewFromString(*req.PurchasePrice)
		if parseErr != nil {
			return ItemResponse{}, fmt.Errorf("invalid purchase_price: %w", parseErr)
		}
		item.PurchasePrice = price
	}
	if req.SellingPrice != nil {
		price, parseErr := decimal.NewFromString(*req.SellingPrice)
		if parseErr != nil {
			return ItemResponse{}, fmt.Errorf("invalid selling_price: %w", parseErr)
		}
		if price.IsNegative() {
			return ItemResponse{}, fmt.Errorf("selling_price must not be negative")
		}
		// Existing invoice lines keep their snapshotted rate.
		item.SellingPrice = price
	}
	if req.GSTRate != nil {
		rate, parseErr := decimal.NewFromString(*req.GSTRate)
		if parseErr != nil {
			return ItemResponse{}, fmt.Errorf("invalid gst_rate: %w", parseErr)
		}
		if !billing.ValidTaxRate(rate) {
			return ItemResponse{}, fmt.Errorf("gst_rate %s is not a recognized slab", rate.String())
		}
		item.GSTRate = rate
	}
	if req.MinStockLevel != nil {
		level, parseErr := decimal.NewFromString(*req.MinStockLevel)
		if parseErr != nil {
			return ItemResponse{}, fmt.Errorf("invalid min_stock_level: %w", parseErr)
		}
		item.MinStockLevel = level
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return ItemResponse{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdateItem, item.ID.String(), item.Name, req)

	return toItemResponse(item), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string, userID *uuid.UUID) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid item id: %w", err)
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("item not found: %w", err)
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionDeleteItem, itemID.String(), item.Name, nil)

	return nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string) (ItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("item not found: %w", err)
	}

	return toItemResponse(item), nil
}

func (s *itemService) ListItems(ctx context.Context, search string, page, limit int) ([]ItemResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	items, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch items: %w", err)
	}

	result := make([]ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, toItemResponse(&items[i]))
	}
	return result, total, nil
}

// AdjustStock applies a manual signed correction under a row lock so that
// concurrent invoice postings cannot interleave with it.
func (s *itemService) AdjustStock(ctx context.Context, id string, req AdjustStockRequest, userID *uuid.UUID) (ItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		return ItemResponse{}, fmt.Errorf("invalid delta: %w", err)
	}
	if delta.IsZero() {
		return ItemResponse{}, fmt.Errorf("delta must not be zero")
	}

	var item *model.Item
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		item, findErr = s.repo.FindByIDForUpdate(txCtx, itemID)
		if findErr != nil {
			return fmt.Errorf("item not found: %w", findErr)
		}

		newQuantity := item.StockQuantity.Add(delta)
		if newQuantity.IsNegative() {
			return fmt.Errorf("stock cannot go below zero: have %s, delta %s",
				item.StockQuantity.String(), delta.String())
		}

		item.StockQuantity = newQuantity
		return s.repo.UpdateStock(txCtx, itemID, newQuantity)
	})
	if err != nil {
		return ItemResponse{}, err
	}

	s.audit.Record(ctx, userID, model.ActionUpdateStock, itemID.String(), item.Name, req)

	return toItemResponse(item), nil
}

func (s *itemService) ListLowStock(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch low stock items: %w", err)
	}

	result := make([]ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, toItemResponse(&items[i]))
	}
	return result, nil
}

// --- Helpers ---

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// --- Mapping ---

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID.String(),
		Name:          item.Name,
		Description:   item.Description,
		HSNCode:       item.HSNCode,
		Unit:          item.Unit,
		PurchasePrice: item.PurchasePrice.StringFixed(2),
		SellingPrice:  item.SellingPrice.StringFixed(2),
		GSTRate:       item.GSTRate.StringFixed(2),
		StockQuantity: item.StockQuantity.String(),
		MinStockLevel: item.MinStockLevel.String(),
		LowStock:      item.StockQuantity.LessThanOrEqual(item.MinStockLevel),
		IsActive:      item.IsActive,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
}
