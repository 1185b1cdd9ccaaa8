package catalog

import (
	"context"

	"whatsapp-storefront-be/pkg/textutil"
)

// Product is the read-only view of a catalog item the resolver works with.
type Product struct {
	Id          string
	Name        string
	Description string
	Price       float64
	Category    string
	Subcategory string
}

// Reader is the catalog collaborator contract. All queries are tenant
// scoped and return available items only.
type Reader interface {
	ListCategories(ctx context.Context, tenantId string) ([]string, error)
	ListSubcategories(ctx context.Context, tenantId, category string) ([]string, error)
	FindProductByName(ctx context.Context, tenantId, name string) (*Product, error)
	FindProductById(ctx context.Context, tenantId, id string) (*Product, error)
	ListProducts(ctx context.Context, tenantId string, limit int) ([]*Product, error)
}

// Thresholds are the minimum fuzzy similarities per scope. Subcategory
// matching is looser: the vocabulary is smaller and the category context
// already disambiguates.
type Thresholds struct {
	Category    float64
	Subcategory float64
	Product     float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Category: 60, Subcategory: 50, Product: 60}
}

// candidateCap bounds the product set fetched for fuzzy name matching.
const candidateCap = 200

// Resolver narrows free-form names against live catalog data: exact
// normalized match first, fuzzy match second. A miss is reported as a nil
// result, never as an error.
type Resolver struct {
	reader     Reader
	thresholds Thresholds
}

func NewResolver(reader Reader, thresholds Thresholds) *Resolver {
	return &Resolver{reader: reader, thresholds: thresholds}
}

// ResolveCategory matches rawName against the tenant's distinct category
// values. Returns "" when nothing reaches the threshold.
func (r *Resolver) ResolveCategory(ctx context.Context, tenantId, rawName string) (string, error) {
	if rawName == "" {
		return "", nil
	}
	categories, err := r.reader.ListCategories(ctx, tenantId)
	if err != nil {
		return "", err
	}
	return matchItem(rawName, categories, r.thresholds.Category), nil
}

// ResolveSubcategory matches rawName against the subcategories of one
// category.
func (r *Resolver) ResolveSubcategory(ctx context.Context, tenantId, category, rawName string) (string, error) {
	if rawName == "" {
		return "", nil
	}
	subcategories, err := r.reader.ListSubcategories(ctx, tenantId, category)
	if err != nil {
		return "", err
	}
	return matchItem(rawName, subcategories, r.thresholds.Subcategory), nil
}

// RescueCategory is the low-confidence fallback: it fuzzy-matches the whole
// user message against the tenant's categories and reports the score so the
// orchestrator can decide whether to override the classified intent.
func (r *Resolver) RescueCategory(ctx context.Context, tenantId, text string) (textutil.MatchResult, error) {
	categories, err := r.reader.ListCategories(ctx, tenantId)
	if err != nil {
		return textutil.MatchResult{}, err
	}
	return textutil.ClosestMatch(text, categories, r.thresholds.Category), nil
}

// ResolveProduct finds a product by raw name, falling back to the session's
// last product id when no name was given. A named product that misses the
// direct lookup goes through a bounded fuzzy pass over the tenant's catalog.
func (r *Resolver) ResolveProduct(ctx context.Context, tenantId, rawName, lastProductId string) (*Product, error) {
	if rawName == "" {
		if lastProductId == "" {
			return nil, nil
		}
		return r.reader.FindProductById(ctx, tenantId, lastProductId)
	}

	product, err := r.reader.FindProductByName(ctx, tenantId, rawName)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	candidates, err := r.reader.ListProducts(ctx, tenantId, candidateCap)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	result := textutil.ClosestMatch(rawName, names, r.thresholds.Product)
	if result.Match == "" {
		return nil, nil
	}
	for _, c := range candidates {
		if c.Name == result.Match {
			return c, nil
		}
	}
	return nil, nil
}

// matchItem applies the two-step resolution: exact normalized equality,
// then fuzzy matching at the given threshold.
func matchItem(query string, items []string, threshold float64) string {
	if exact := textutil.FindNormalizedMatch(query, items); exact != "" {
		return exact
	}
	return textutil.ClosestMatch(query, items, threshold).Match
}
