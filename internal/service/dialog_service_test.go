package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/entity"
	"whatsapp-storefront-be/pkg/catalog"
	"whatsapp-storefront-be/pkg/events"
	"whatsapp-storefront-be/pkg/intent"
	"whatsapp-storefront-be/pkg/reply"
	"whatsapp-storefront-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *entity.Company) error { return nil }

func (f *fakeCompanyRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	if f.company != nil && f.company.Id == id {
		return f.company, nil
	}
	return nil, nil
}

func (f *fakeCompanyRepo) FindByPhoneNumberId(ctx context.Context, phoneNumberId string) (*entity.Company, error) {
	if f.company != nil && f.company.WhatsappPhoneNumberId == phoneNumberId {
		return f.company, nil
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[string]*store.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*store.Session)}
}

func (f *fakeSessionRepo) Get(ctx context.Context, tenantId, userId string) (*store.Session, bool, error) {
	s, ok := f.sessions[store.Key(tenantId, userId)]
	return s, ok, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *store.Session) error {
	f.sessions[store.Key(session.TenantId, session.UserId)] = session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, tenantId, userId string) error {
	delete(f.sessions, store.Key(tenantId, userId))
	return nil
}

type fakeBrowser struct {
	categories    []string
	subcategories map[string][]string
	products      []*catalog.Product
}

func (f *fakeBrowser) ListCategories(ctx context.Context, tenantId string) ([]string, error) {
	return f.categories, nil
}

func (f *fakeBrowser) ListSubcategories(ctx context.Context, tenantId, category string) ([]string, error) {
	return f.subcategories[category], nil
}

func (f *fakeBrowser) FindProductByName(ctx context.Context, tenantId, name string) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeBrowser) FindProductById(ctx context.Context, tenantId, id string) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.Id == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeBrowser) ListProducts(ctx context.Context, tenantId string, limit int) ([]*catalog.Product, error) {
	return f.products, nil
}

func (f *fakeBrowser) ListAvailableProducts(ctx context.Context, tenantId, category, subcategory string, limit int) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range f.products {
		if category != "" && p.Category != category {
			continue
		}
		if subcategory != "" && p.Subcategory != subcategory {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeClassifier struct {
	results map[string]intent.Result
	calls   int
	panics  bool
}

func (f *fakeClassifier) Classify(ctx context.Context, text string, session intent.SessionContext) (intent.Result, error) {
	f.calls++
	if f.panics {
		panic("classifier exploded")
	}
	if res, ok := f.results[text]; ok {
		return res, nil
	}
	return intent.Unknown(), nil
}

type fakeGenerator struct {
	answer string
	err    error
}

func (f *fakeGenerator) ProductAnswer(ctx context.Context, pc reply.ProductContext, userMessage string) (string, error) {
	return f.answer, f.err
}

type fakeHumanizer struct{}

func (f *fakeHumanizer) Rewrite(ctx context.Context, baseText, companyName string) string {
	return baseText
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePublisher) lastReply(t *testing.T) *dto.OutboundReply {
	t.Helper()
	require.NotEmpty(t, f.payloads)
	var reply dto.OutboundReply
	require.NoError(t, json.Unmarshal(f.payloads[len(f.payloads)-1], &reply))
	return &reply
}

type fakeEventPub struct {
	published []events.Event
}

func (f *fakeEventPub) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventPub) ofType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range f.published {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// --- fixture ---

type dialogFixture struct {
	svc        IDialogService
	company    *entity.Company
	sessions   *fakeSessionRepo
	classifier *fakeClassifier
	generator  *fakeGenerator
	publisher  *fakePublisher
	events     *fakeEventPub
}

func newDialogFixture() *dialogFixture {
	company := &entity.Company{
		Id:                    uuid.New(),
		Name:                  "Loja Demo",
		WhatsappPhoneNumberId: "15550001111",
		Address:               "Rua Exemplo, 123",
		BusinessHours:         "09h às 18h",
		PaymentMethods:        []string{"Pix", "Cartão"},
	}

	browser := &fakeBrowser{
		categories: []string{"Calças", "Camisetas", "Vestidos"},
		subcategories: map[string][]string{
			"Calças": {"Jeans", "Moletom"},
		},
		products: []*catalog.Product{
			{Id: "p1", Name: "Calça Jeans Slim", Price: 129.9, Category: "Calças", Subcategory: "Jeans"},
			{Id: "p2", Name: "Camiseta Básica Branca", Price: 59.9, Category: "Camisetas"},
			{Id: "p3", Name: "Vestido Floral", Price: 159.9, Category: "Vestidos"},
		},
	}

	sessions := newFakeSessionRepo()
	classifier := &fakeClassifier{results: make(map[string]intent.Result)}
	generator := &fakeGenerator{answer: "O material é leve e respirável, perfeito pra dias quentes."}
	publisher := &fakePublisher{}
	eventPub := &fakeEventPub{}

	svc := NewDialogService(
		&fakeCompanyRepo{company: company},
		sessions,
		browser,
		catalog.NewResolver(browser, catalog.DefaultThresholds()),
		classifier,
		generator,
		&fakeHumanizer{},
		publisher,
		eventPub,
		noopLogger{},
		DialogConfig{
			MinConfidence:     0.6,
			RescueConfidence:  0.75,
			GenerationTimeout: 5 * time.Second,
		},
	)

	return &dialogFixture{
		svc:        svc,
		company:    company,
		sessions:   sessions,
		classifier: classifier,
		generator:  generator,
		publisher:  publisher,
		events:     eventPub,
	}
}

func (f *dialogFixture) turn(t *testing.T, text string) *dto.TurnResult {
	t.Helper()
	result, err := f.svc.HandleTurn(context.Background(), &dto.InboundMessage{
		PhoneNumberId: f.company.WhatsappPhoneNumberId,
		From:          "5511999990000",
		Text:          text,
	})
	require.NoError(t, err)
	return result
}

func (f *dialogFixture) session() *store.Session {
	s, _ := f.sessions.sessions[store.Key(f.company.Id.String(), "5511999990000")]
	return s
}

// --- tests ---

func TestHandleTurnDrops(t *testing.T) {
	f := newDialogFixture()

	t.Run("anti-loop", func(t *testing.T) {
		result, err := f.svc.HandleTurn(context.Background(), &dto.InboundMessage{
			PhoneNumberId: f.company.WhatsappPhoneNumberId,
			From:          f.company.WhatsappPhoneNumberId,
			Text:          "oi",
		})
		require.NoError(t, err)
		assert.True(t, result.Dropped)
	})

	t.Run("unknown phone number", func(t *testing.T) {
		result, err := f.svc.HandleTurn(context.Background(), &dto.InboundMessage{
			PhoneNumberId: "unknown",
			From:          "5511999990000",
			Text:          "oi",
		})
		require.NoError(t, err)
		assert.True(t, result.Dropped)
	})

	t.Run("blank text", func(t *testing.T) {
		result, err := f.svc.HandleTurn(context.Background(), &dto.InboundMessage{
			PhoneNumberId: f.company.WhatsappPhoneNumberId,
			From:          "5511999990000",
			Text:          "   ",
		})
		require.NoError(t, err)
		assert.True(t, result.Dropped)
	})

	assert.Empty(t, f.publisher.payloads, "dropped turns must not reply")
}

func TestGreetingSkipsClassifier(t *testing.T) {
	f := newDialogFixture()

	result := f.turn(t, "Oi, tudo bem?")

	assert.Contains(t, result.Reply, "• Calças")
	assert.Contains(t, result.Reply, "• Vestidos")
	assert.Zero(t, f.classifier.calls)

	sent := f.publisher.lastReply(t)
	assert.Equal(t, "5511999990000", sent.To)
	assert.Equal(t, result.Reply, sent.Body)
}

func TestMenuShortcuts(t *testing.T) {
	f := newDialogFixture()

	t.Run("1 lists categories", func(t *testing.T) {
		result := f.turn(t, "1")
		assert.Contains(t, result.Reply, "• Camisetas")
	})

	t.Run("2 lists products", func(t *testing.T) {
		result := f.turn(t, "2")
		assert.Contains(t, result.Reply, "Calça Jeans Slim")
	})

	t.Run("3 hands off", func(t *testing.T) {
		result := f.turn(t, "3")
		assert.True(t, result.HandedOff)
		assert.Equal(t, reply.HandoffAck(), result.Reply)
	})

	assert.Zero(t, f.classifier.calls)
}

func TestStoreInfoRules(t *testing.T) {
	f := newDialogFixture()

	assert.Contains(t, f.turn(t, "qual o endereço?").Reply, "Rua Exemplo, 123")
	assert.Contains(t, f.turn(t, "qual o horário de funcionamento?").Reply, "09h às 18h")
	assert.Contains(t, f.turn(t, "aceita pix?").Reply, "Pix, Cartão")
	assert.Zero(t, f.classifier.calls)
}

func TestViewCategoryFlow(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["quero ver calças"] = intent.Result{
		Intent: intent.IntentViewCategory, Category: "calças", Confidence: 0.9,
	}

	result := f.turn(t, "quero ver calças")

	assert.Contains(t, result.Reply, "*Calças*")
	assert.Contains(t, result.Reply, "• Jeans")
	assert.Equal(t, "Calças", f.session().LastCategory)
	assert.Empty(t, f.session().LastSubcategory)
}

func TestViewCategoryWithoutSubcategoriesListsProducts(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["tem vestidos?"] = intent.Result{
		Intent: intent.IntentViewCategory, Category: "vestidos", Confidence: 0.85,
	}

	result := f.turn(t, "tem vestidos?")

	assert.Contains(t, result.Reply, "Vestido Floral")
	assert.Equal(t, "Vestidos", f.session().LastCategory)
	assert.Equal(t, "p3", f.session().LastProductId)
}

func TestViewSubcategoryUsesSessionCategory(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["quero ver calças"] = intent.Result{
		Intent: intent.IntentViewCategory, Category: "calças", Confidence: 0.9,
	}
	f.classifier.results["jeans"] = intent.Result{
		Intent: intent.IntentViewSubcategory, Subcategory: "jeans", Confidence: 0.8,
	}

	f.turn(t, "quero ver calças")
	result := f.turn(t, "jeans")

	assert.Contains(t, result.Reply, "Calça Jeans Slim")
	assert.Equal(t, "Calças", f.session().LastCategory)
	assert.Equal(t, "Jeans", f.session().LastSubcategory)
	assert.Equal(t, "p1", f.session().LastProductId)
}

func TestCategoryChangeClearsNarrowerContext(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["quero ver calças"] = intent.Result{
		Intent: intent.IntentViewCategory, Category: "calças", Confidence: 0.9,
	}
	f.classifier.results["jeans"] = intent.Result{
		Intent: intent.IntentViewSubcategory, Subcategory: "jeans", Confidence: 0.8,
	}
	f.classifier.results["e camisetas?"] = intent.Result{
		Intent: intent.IntentViewCategory, Category: "camisetas", Confidence: 0.9,
	}

	f.turn(t, "quero ver calças")
	f.turn(t, "jeans")
	f.turn(t, "e camisetas?")

	assert.Equal(t, "Camisetas", f.session().LastCategory)
	assert.Empty(t, f.session().LastSubcategory, "subcategory must reset on category change")
	// Flat category listing repoints the product anchor.
	assert.Equal(t, "p2", f.session().LastProductId)
}

func TestLowConfidenceRescue(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["calsas"] = intent.Result{
		Intent: intent.IntentUnknown, Confidence: 0.3,
	}

	result := f.turn(t, "calsas")

	assert.Equal(t, string(intent.IntentViewCategory), result.Intent)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Contains(t, result.Reply, "*Calças*")
}

func TestLowConfidenceWithoutRescueSaysNotFound(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["quero um notebook gamer"] = intent.Result{
		Intent: intent.IntentUnknown, Confidence: 0.2,
	}

	result := f.turn(t, "quero um notebook gamer")

	assert.Equal(t, string(intent.IntentUnknown), result.Intent)
	assert.Contains(t, result.Reply, "Tente buscar uma categoria ou subcategoria.")
}

func TestProductQuestionFlow(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["me fala da calça jeans slim"] = intent.Result{
		Intent: intent.IntentViewProduct, Product: "Calça Jeans Slim", Confidence: 0.9,
	}
	f.classifier.results["qual o preço?"] = intent.Result{
		Intent: intent.IntentAskProductAttribute, Confidence: 0.8,
	}

	result := f.turn(t, "me fala da calça jeans slim")
	assert.Equal(t, f.generator.answer, result.Reply)
	assert.Equal(t, "p1", f.session().LastProductId)

	// Follow-up question with no product name reuses the session anchor.
	result = f.turn(t, "qual o preço?")
	assert.Equal(t, f.generator.answer, result.Reply)
}

func TestProductAnswerFailureBecomesApology(t *testing.T) {
	f := newDialogFixture()
	f.generator.answer = ""
	f.classifier.results["me fala da calça jeans slim"] = intent.Result{
		Intent: intent.IntentViewProduct, Product: "Calça Jeans Slim", Confidence: 0.9,
	}

	result := f.turn(t, "me fala da calça jeans slim")

	assert.Equal(t, reply.TechnicalApology(), result.Reply)
	assert.False(t, result.HandedOff, "apology offers a human but does not park the session")
	assert.Equal(t, "p1", f.session().LastProductId, "resolution sticks even when generation fails")
}

func TestHandoffIsSticky(t *testing.T) {
	f := newDialogFixture()

	result := f.turn(t, "quero falar com um atendente")
	assert.True(t, result.HandedOff)
	require.Len(t, f.events.ofType(events.TypeHandoffRequested), 1)

	// Every later message is parked, the classifier never runs.
	result = f.turn(t, "quero ver calças")
	assert.True(t, result.HandedOff)
	assert.Equal(t, reply.HumanInProgress(), result.Reply)
	assert.Zero(t, f.classifier.calls)
}

func TestEveryHandledTurnEmitsMessageEvent(t *testing.T) {
	f := newDialogFixture()

	f.turn(t, "oi")
	f.turn(t, "quero ver calças")

	received := f.events.ofType(events.TypeMessageReceived)
	require.Len(t, received, 2)
	assert.Equal(t, f.company.Id.String(), received[0].Payload()["tenant_id"])
	assert.Equal(t, "5511999990000", received[0].Payload()["user_id"])

	// Dropped turns emit nothing.
	f.turn(t, "   ")
	assert.Len(t, f.events.ofType(events.TypeMessageReceived), 2)
}

func TestRoutingPanicBecomesApology(t *testing.T) {
	f := newDialogFixture()
	f.classifier.panics = true

	result := f.turn(t, "alguma coisa estranha")
	assert.Equal(t, reply.TechnicalApology(), result.Reply)
	assert.Equal(t, reply.TechnicalApology(), f.publisher.lastReply(t).Body)

	// The engine keeps serving later turns.
	f.classifier.panics = false
	result = f.turn(t, "oi")
	assert.Contains(t, result.Reply, "Calças")
}

func TestResetReturnsConversationToBot(t *testing.T) {
	f := newDialogFixture()

	f.turn(t, "quero falar com um atendente")
	require.True(t, f.session().HandedOff)

	err := f.svc.ResetSession(context.Background(), f.company.WhatsappPhoneNumberId, "5511999990000")
	require.NoError(t, err)
	assert.Nil(t, f.session())

	result := f.turn(t, "oi")
	assert.False(t, result.HandedOff)
	assert.Contains(t, result.Reply, "Calças")
}

func TestResetUnknownTenantIsNoop(t *testing.T) {
	f := newDialogFixture()
	err := f.svc.ResetSession(context.Background(), "999", "5511999990000")
	assert.NoError(t, err)
}

func TestListProductsFallsBackToWholeCatalog(t *testing.T) {
	f := newDialogFixture()
	f.classifier.results["quero ver os produtos"] = intent.Result{
		Intent: intent.IntentListProducts, Confidence: 0.9,
	}

	result := f.turn(t, "quero ver os produtos")

	assert.Contains(t, result.Reply, "Calça Jeans Slim")
	assert.Contains(t, result.Reply, "Vestido Floral")
}
