package service

import (
	"context"
	"fmt"
	"time"

	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/entity"
	"whatsapp-storefront-be/internal/repository/contract"
	"whatsapp-storefront-be/internal/repository/specification"
	"whatsapp-storefront-be/pkg/catalog"

	"github.com/google/uuid"
)

type ICatalogService interface {
	// Reader side consumed by the resolver. Tenant ids are company uuids
	// in string form; the parse happens here, at the boundary.
	catalog.Reader

	// ListAvailableProducts is the chat-facing browse query. Category and
	// subcategory are optional exact values (already resolved).
	ListAvailableProducts(ctx context.Context, tenantId, category, subcategory string, limit int) ([]*catalog.Product, error)

	CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error)
	CreateProduct(ctx context.Context, companyId uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, companyId uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, companyId, id uuid.UUID) error
	GetProducts(ctx context.Context, companyId uuid.UUID, category, subcategory string, page, perPage int) (*dto.ListProductsResponse, error)
	GetCategories(ctx context.Context, companyId uuid.UUID) (*dto.ListCategoriesResponse, error)
}

type catalogService struct {
	companyRepo contract.CompanyRepository
	productRepo contract.ProductRepository
}

func NewCatalogService(
	companyRepo contract.CompanyRepository,
	productRepo contract.ProductRepository,
) ICatalogService {
	return &catalogService{
		companyRepo: companyRepo,
		productRepo: productRepo,
	}
}

// --- catalog.Reader ---

func (s *catalogService) ListCategories(ctx context.Context, tenantId string) ([]string, error) {
	companyId, err := uuid.Parse(tenantId)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
	}
	return s.productRepo.DistinctCategories(ctx, companyId)
}

func (s *catalogService) ListSubcategories(ctx context.Context, tenantId, category string) ([]string, error) {
	companyId, err := uuid.Parse(tenantId)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
	}
	return s.productRepo.DistinctSubcategories(ctx, companyId, category)
}

func (s *catalogService) FindProductByName(ctx context.Context, tenantId, name string) (*catalog.Product, error) {
	companyId, err := uuid.Parse(tenantId)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
	}
	product, err := s.productRepo.FindByNameILike(ctx, companyId, name)
	if err != nil {
		return nil, err
	}
	return toCatalogProduct(product), nil
}

func (s *catalogService) FindProductById(ctx context.Context, tenantId, id string) (*catalog.Product, error) {
	companyId, err := uuid.Parse(tenantId)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
	}
	productId, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	product, err := s.productRepo.FindOne(ctx,
		specification.ByID{ID: productId},
		specification.ByCompanyID{CompanyID: companyId},
		specification.AvailableOnly{},
	)
	if err != nil {
		return nil, err
	}
	return toCatalogProduct(product), nil
}

func (s *catalogService) ListProducts(ctx context.Context, tenantId string, limit int) ([]*catalog.Product, error) {
	companyId, err := uuid.Parse(tenantId)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
	}
	products, err := s.productRepo.FindAll(ctx,
		specification.ByCompanyID{CompanyID: companyId},
		specification.AvailableOnly{},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, err
	}
	result := make([]*catalog.Product, len(products))
	for i, p := range products {
		result[i] = toCatalogProduct(p)
	}
	return result, nil
}

func (s *catalogService) ListAvailableProducts(ctx context.Context, tenantId, category, subcategory string, limit int) ([]*catalog.Product, error) {
	companyId, err := uuid.Parse(tenantId)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
	}

	specs := []specification.Specification{
		specification.ByCompanyID{CompanyID: companyId},
		specification.AvailableOnly{},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}
	if subcategory != "" {
		specs = append(specs, specification.BySubcategory{Subcategory: subcategory})
	}
	specs = append(specs, specification.Limit{N: limit})

	products, err := s.productRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	result := make([]*catalog.Product, len(products))
	for i, p := range products {
		result[i] = toCatalogProduct(p)
	}
	return result, nil
}

func toCatalogProduct(p *entity.Product) *catalog.Product {
	if p == nil {
		return nil
	}
	return &catalog.Product{
		Id:          p.Id.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
	}
}

// --- Admin operations ---

func (s *catalogService) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error) {
	company := entity.Company{
		Id:                    uuid.New(),
		Name:                  req.Name,
		WhatsappPhoneNumberId: req.WhatsappPhoneNumberId,
		Address:               req.Address,
		BusinessHours:         req.BusinessHours,
		PaymentMethods:        req.PaymentMethods,
		CreatedAt:             time.Now(),
	}

	if err := s.companyRepo.Create(ctx, &company); err != nil {
		return nil, err
	}

	return &dto.CreateCompanyResponse{Id: company.Id}, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, companyId uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product := entity.Product{
		Id:          uuid.New(),
		CompanyId:   companyId,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Available:   available,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, err
	}

	return toProductResponse(&product), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, companyId uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByCompanyID{CompanyID: companyId},
	)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	now := time.Now()
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category
	product.Subcategory = req.Subcategory
	if req.Available != nil {
		product.Available = *req.Available
	}
	product.UpdatedAt = &now

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, companyId, id uuid.UUID) error {
	product, err := s.productRepo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByCompanyID{CompanyID: companyId},
	)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *catalogService) GetProducts(ctx context.Context, companyId uuid.UUID, category, subcategory string, page, perPage int) (*dto.ListProductsResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	filters := []specification.Specification{
		specification.ByCompanyID{CompanyID: companyId},
	}
	if category != "" {
		filters = append(filters, specification.ByCategory{Category: category})
	}
	if subcategory != "" {
		filters = append(filters, specification.BySubcategory{Subcategory: subcategory})
	}

	// Count uses the filters only; ordering and pagination would skew it.
	total, err := s.productRepo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "name"},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	products, err := s.productRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		result[i] = toProductResponse(p)
	}
	return &dto.ListProductsResponse{Products: result, Total: total}, nil
}

func (s *catalogService) GetCategories(ctx context.Context, companyId uuid.UUID) (*dto.ListCategoriesResponse, error) {
	categories, err := s.productRepo.DistinctCategories(ctx, companyId)
	if err != nil {
		return nil, err
	}
	return &dto.ListCategoriesResponse{Categories: categories}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
