package store

// Session represents the short-lived conversational memory for one user
// within one tenant. It is the only state carried between turns.
type Session struct {
	TenantId string `json:"tenant_id"`
	UserId   string `json:"user_id"`

	LastCategory    string `json:"last_category"`
	LastSubcategory string `json:"last_subcategory"`
	LastProductId   string `json:"last_product_id"`

	// HandedOff freezes the conversation to human handling until reset.
	HandedOff bool `json:"handed_off"`
}

// Key builds the session map key. Sessions are scoped per tenant so two
// stores sharing a phone number never leak context into each other.
func Key(tenantId, userId string) string {
	return tenantId + ":" + userId
}

func NewSession(tenantId, userId string) *Session {
	return &Session{TenantId: tenantId, UserId: userId}
}

// SetCategory sets the category and invalidates the narrower context:
// a category switch makes the remembered subcategory and product stale.
func (s *Session) SetCategory(category string) {
	s.LastCategory = category
	s.LastSubcategory = ""
	s.LastProductId = ""
}

// SetSubcategory sets the subcategory and invalidates the remembered product.
func (s *Session) SetSubcategory(subcategory string) {
	s.LastSubcategory = subcategory
	s.LastProductId = ""
}

// SetProduct remembers the product id without touching category context.
func (s *Session) SetProduct(productId string) {
	s.LastProductId = productId
}

// Patch is the session mutation produced by one dialogue turn. Handlers
// return patches instead of mutating state inline so turns stay testable.
type Patch struct {
	Category    *string
	Subcategory *string
	ProductId   *string
	HandOff     bool
}

// Apply mutates the session, preserving the cascading invalidation rules
// regardless of which fields the patch carries.
func (p Patch) Apply(s *Session) {
	if p.Category != nil {
		s.SetCategory(*p.Category)
	}
	if p.Subcategory != nil {
		s.SetSubcategory(*p.Subcategory)
	}
	if p.ProductId != nil {
		s.SetProduct(*p.ProductId)
	}
	if p.HandOff {
		s.HandedOff = true
	}
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Category == nil && p.Subcategory == nil && p.ProductId == nil && !p.HandOff
}
