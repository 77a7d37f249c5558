package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/model"
	"github.com/4ugusta/chaibooks-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	GSTIN   string `json:"gstin" binding:"omitempty,len=15"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode"`
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	GSTIN    *string `json:"gstin" binding:"omitempty,len=15"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Street   *string `json:"street"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Pincode  *string `json:"pincode"`
	IsActive *bool   `json:"is_active"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GSTIN     string `json:"gstin"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest, userID *uuid.UUID) (CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest, userID *uuid.UUID) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string, userID *uuid.UUID) error
	GetCustomerByID(ctx context.Context, id string) (CustomerResponse, error)
	ListCustomers(ctx context.Context, search string, page, limit int) ([]CustomerResponse, int64, error)
}

type customerService struct {
	repo  repository.CustomerRepository
	audit AuditService
}

func NewCustomerService(repo repository.CustomerRepository, audit AuditService) CustomerService {
	return &customerService{repo: repo, audit: audit}
}

// --- Implementation ---

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest, userID *uuid.UUID) (CustomerResponse, error) {
	customer := &model.Customer{
		Name:     req.Name,
		GSTIN:    strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		Phone:    req.Phone,
		Email:    req.Email,
		Street:   req.Street,
		City:     req.City,
		State:    strings.TrimSpace(req.State),
		Pincode:  req.Pincode,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return CustomerResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionCreateCustomer, customer.ID.String(), customer.Name, req)

	return toCustomerResponse(customer), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest, userID *uuid.UUID) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("customer not found: %w", err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.GSTIN != nil {
		customer.GSTIN = strings.ToUpper(strings.TrimSpace(*req.GSTIN))
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Street != nil {
		customer.Street = *req.Street
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil && strings.TrimSpace(*req.State) != "" {
		// Issued invoices keep their frozen jurisdiction; only future
		// invoices see the new state.
		customer.State = strings.TrimSpace(*req.State)
	}
	if req.Pincode != nil {
		customer.Pincode = *req.Pincode
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return CustomerResponse{}, fmt.Errorf("failed to update customer: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdateCustomer, customer.ID.String(), customer.Name, req)

	return toCustomerResponse(customer), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string, userID *uuid.UUID) error {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customer not found: %w", err)
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionDeleteCustomer, customerID.String(), customer.Name, nil)

	return nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id string) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("customer not found: %w", err)
	}

	return toCustomerResponse(customer), nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string, page, limit int) ([]CustomerResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	customers, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	result := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, toCustomerResponse(&customers[i]))
	}
	return result, total, nil
}

// --- Mapping ---

func toCustomerResponse(c *model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		GSTIN:     c.GSTIN,
		Phone:     c.Phone,
		Email:     c.Email,
		Street:    c.Street,
		City:      c.City,
		State:     c.State,
		Pincode:   c.Pincode,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
