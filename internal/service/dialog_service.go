package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/entity"
	"whatsapp-storefront-be/internal/pkg/logger"
	"whatsapp-storefront-be/internal/repository/contract"
	"whatsapp-storefront-be/pkg/catalog"
	"whatsapp-storefront-be/pkg/events"
	"whatsapp-storefront-be/pkg/intent"
	"whatsapp-storefront-be/pkg/reply"
	"whatsapp-storefront-be/pkg/store"
)

const productListLimit = 100

// CatalogBrowser is the catalog surface the dialogue engine needs:
// resolver reads plus the filtered browse query.
type CatalogBrowser interface {
	catalog.Reader
	ListAvailableProducts(ctx context.Context, tenantId, category, subcategory string, limit int) ([]*catalog.Product, error)
}

// IntentClassifier abstracts the LLM interpreter so tests can script it.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, session intent.SessionContext) (intent.Result, error)
}

// AnswerGenerator produces free-form product answers.
type AnswerGenerator interface {
	ProductAnswer(ctx context.Context, pc reply.ProductContext, userMessage string) (string, error)
}

// ReplyHumanizer softens canned replies; it must fall back to the base text.
type ReplyHumanizer interface {
	Rewrite(ctx context.Context, baseText, companyName string) string
}

// EventPublisher emits domain events. May be nil when NATS is down.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IDialogService interface {
	HandleTurn(ctx context.Context, msg *dto.InboundMessage) (*dto.TurnResult, error)

	// ResetSession wipes a user's conversation state, including the
	// hand-off flag, returning the conversation to the bot.
	ResetSession(ctx context.Context, phoneNumberId, userId string) error
}

// DialogConfig carries the routing tunables.
type DialogConfig struct {
	MinConfidence     float64
	RescueConfidence  float64
	GenerationTimeout time.Duration
}

type dialogService struct {
	companyRepo contract.CompanyRepository
	sessionRepo contract.SessionRepository
	browser     CatalogBrowser
	resolver    *catalog.Resolver
	classifier  IntentClassifier
	generator   AnswerGenerator
	humanizer   ReplyHumanizer
	publisher   IPublisherService
	eventPub    EventPublisher
	log         logger.ILogger
	cfg         DialogConfig
}

func NewDialogService(
	companyRepo contract.CompanyRepository,
	sessionRepo contract.SessionRepository,
	browser CatalogBrowser,
	resolver *catalog.Resolver,
	classifier IntentClassifier,
	generator AnswerGenerator,
	humanizer ReplyHumanizer,
	publisher IPublisherService,
	eventPub EventPublisher,
	log logger.ILogger,
	cfg DialogConfig,
) IDialogService {
	return &dialogService{
		companyRepo: companyRepo,
		sessionRepo: sessionRepo,
		browser:     browser,
		resolver:    resolver,
		classifier:  classifier,
		generator:   generator,
		humanizer:   humanizer,
		publisher:   publisher,
		eventPub:    eventPub,
		log:         log,
		cfg:         cfg,
	}
}

// HandleTurn runs one user message through the full routing pipeline and
// queues the reply for delivery. A turn never fails the webhook: internal
// errors degrade to an apology reply.
func (s *dialogService) HandleTurn(ctx context.Context, msg *dto.InboundMessage) (*dto.TurnResult, error) {
	text := strings.TrimSpace(msg.Text)

	// anti-loop
	if msg.From == msg.PhoneNumberId || text == "" {
		return &dto.TurnResult{Dropped: true}, nil
	}

	company, err := s.companyRepo.FindByPhoneNumberId(ctx, msg.PhoneNumberId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return &dto.TurnResult{Dropped: true}, nil
	}

	tenantId := company.Id.String()
	session, found, err := s.sessionRepo.Get(ctx, tenantId, msg.From)
	if err != nil {
		s.log.Warn("dialog", "Session lookup failed, starting fresh", map[string]interface{}{
			"error": err.Error(),
		})
		found = false
	}
	if !found {
		session = store.NewSession(tenantId, msg.From)
	}

	if s.eventPub != nil {
		if err := s.eventPub.Publish(ctx, events.NewMessageReceived(tenantId, msg.From)); err != nil {
			s.log.Warn("dialog", "Failed to publish message event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Parked conversations stay with the human.
	if session.HandedOff {
		return s.deliver(ctx, msg, &dto.TurnResult{
			Reply:     reply.HumanInProgress(),
			HandedOff: true,
		})
	}

	result := s.routeGuarded(ctx, company, session, text)

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.log.Warn("dialog", "Session save failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return s.deliver(ctx, msg, result)
}

func (s *dialogService) ResetSession(ctx context.Context, phoneNumberId, userId string) error {
	company, err := s.companyRepo.FindByPhoneNumberId(ctx, phoneNumberId)
	if err != nil {
		return err
	}
	if company == nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, company.Id.String(), userId)
}

// routeGuarded converts a panic anywhere in the routing phase into the
// generic apology. safeHandle covers the intent handlers; this covers the
// rule matching, classification and rescue steps around them, so one
// poisoned turn never takes the process down.
func (s *dialogService) routeGuarded(ctx context.Context, company *entity.Company, session *store.Session, text string) (result *dto.TurnResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("dialog", "Turn routing panicked", map[string]interface{}{
				"panic": r,
			})
			result = &dto.TurnResult{Reply: reply.TechnicalApology()}
		}
	}()
	return s.route(ctx, company, session, text)
}

// route picks the reply for one turn: deterministic rules first, then the
// LLM classifier with the fuzzy category rescue behind it.
func (s *dialogService) route(ctx context.Context, company *entity.Company, session *store.Session, text string) *dto.TurnResult {
	tenantId := company.Id.String()

	switch intent.MatchRules(text) {
	case intent.RuleGreeting:
		return s.safeHandle(ctx, session, "greeting", func() (string, store.Patch, error) {
			return s.handleGreeting(ctx, tenantId)
		})
	case intent.RuleAddress:
		return &dto.TurnResult{Reply: s.humanizer.Rewrite(ctx, reply.StoreInfo("Endereço", company.Address), company.Name)}
	case intent.RuleBusinessHours:
		return &dto.TurnResult{Reply: s.humanizer.Rewrite(ctx, reply.StoreInfo("Horário de funcionamento", company.BusinessHours), company.Name)}
	case intent.RulePayment:
		return &dto.TurnResult{Reply: s.humanizer.Rewrite(ctx, reply.StoreInfo("Formas de pagamento", strings.Join(company.PaymentMethods, ", ")), company.Name)}
	case intent.RuleListCategories:
		return s.safeHandle(ctx, session, string(intent.IntentListCategories), func() (string, store.Patch, error) {
			return s.handleListCategories(ctx, tenantId)
		})
	case intent.RuleListProducts:
		return s.safeHandle(ctx, session, string(intent.IntentListProducts), func() (string, store.Patch, error) {
			return s.handleListProducts(ctx, tenantId, "", "", session)
		})
	case intent.RuleTalkToHuman:
		return s.handleHandoff(ctx, session, text)
	}

	result, err := s.classifier.Classify(ctx, text, intent.SessionContext{
		LastCategory:    session.LastCategory,
		LastSubcategory: session.LastSubcategory,
		LastProduct:     session.LastProductId,
	})
	if err != nil {
		// context cancelled, nothing useful left to do
		return &dto.TurnResult{Reply: reply.TechnicalApology()}
	}

	if result.Confidence < s.cfg.MinConfidence {
		rescue, err := s.resolver.RescueCategory(ctx, tenantId, text)
		if err != nil || rescue.Match == "" {
			s.log.Info("dialog", "Low confidence and no category rescue", map[string]interface{}{
				"confidence": result.Confidence,
				"similarity": rescue.Similarity,
			})
			return &dto.TurnResult{Reply: reply.NotFound(), Intent: string(intent.IntentUnknown), Confidence: result.Confidence}
		}
		result.Intent = intent.IntentViewCategory
		result.Category = rescue.Match
		result.Confidence = s.cfg.RescueConfidence
	}

	return s.dispatch(ctx, company, session, text, result)
}

func (s *dialogService) dispatch(ctx context.Context, company *entity.Company, session *store.Session, text string, result intent.Result) *dto.TurnResult {
	tenantId := company.Id.String()

	turn := s.safeHandle(ctx, session, string(result.Intent), func() (string, store.Patch, error) {
		switch result.Intent {
		case intent.IntentListCategories:
			return s.handleListCategories(ctx, tenantId)

		case intent.IntentViewCategory:
			return s.handleViewCategory(ctx, tenantId, result.Category)

		case intent.IntentViewSubcategory:
			category := result.Category
			if category == "" {
				category = session.LastCategory
			}
			return s.handleViewSubcategory(ctx, tenantId, category, result.Subcategory)

		case intent.IntentViewProduct, intent.IntentAskProductAttribute:
			return s.handleProductQuestion(ctx, company, session, result.Product, text)

		case intent.IntentListProducts:
			return s.handleListProducts(ctx, tenantId, result.Category, result.Subcategory, session)

		case intent.IntentTalkToHuman:
			handoff := s.handleHandoff(ctx, session, text)
			return handoff.Reply, store.Patch{}, nil

		default:
			return reply.NotFound(), store.Patch{}, nil
		}
	})

	turn.Intent = string(result.Intent)
	turn.Confidence = result.Confidence
	turn.HandedOff = session.HandedOff
	return turn
}

// safeHandle runs a handler, applies its session patch and converts any
// error or panic into the apology reply.
func (s *dialogService) safeHandle(ctx context.Context, session *store.Session, intentName string, handler func() (string, store.Patch, error)) (turn *dto.TurnResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("dialog", "Handler panicked", map[string]interface{}{
				"intent": intentName,
				"panic":  r,
			})
			turn = &dto.TurnResult{Reply: reply.TechnicalApology(), Intent: intentName}
		}
	}()

	text, patch, err := handler()
	if err != nil {
		s.log.Error("dialog", "Handler failed", map[string]interface{}{
			"intent": intentName,
			"error":  err.Error(),
		})
		return &dto.TurnResult{Reply: reply.TechnicalApology(), Intent: intentName}
	}

	patch.Apply(session)
	return &dto.TurnResult{Reply: text, Intent: intentName}
}

func (s *dialogService) handleGreeting(ctx context.Context, tenantId string) (string, store.Patch, error) {
	categories, err := s.browser.ListCategories(ctx, tenantId)
	if err != nil {
		return "", store.Patch{}, err
	}
	if len(categories) == 0 {
		return reply.EmptyCatalogGreeting(), store.Patch{}, nil
	}
	return reply.Greeting(categories), store.Patch{}, nil
}

func (s *dialogService) handleListCategories(ctx context.Context, tenantId string) (string, store.Patch, error) {
	categories, err := s.browser.ListCategories(ctx, tenantId)
	if err != nil {
		return "", store.Patch{}, err
	}
	if len(categories) == 0 {
		return reply.EmptyCatalog(), store.Patch{}, nil
	}
	return reply.CategoryList(categories), store.Patch{}, nil
}

func (s *dialogService) handleViewCategory(ctx context.Context, tenantId, rawCategory string) (string, store.Patch, error) {
	matched, err := s.resolver.ResolveCategory(ctx, tenantId, rawCategory)
	if err != nil {
		return "", store.Patch{}, err
	}
	if matched == "" {
		return reply.NotFound(), store.Patch{}, nil
	}

	patch := store.Patch{Category: &matched}

	subcategories, err := s.browser.ListSubcategories(ctx, tenantId, matched)
	if err != nil {
		return "", store.Patch{}, err
	}

	// Flat categories skip the submenu and list products directly.
	if len(subcategories) == 0 {
		products, err := s.browser.ListAvailableProducts(ctx, tenantId, matched, "", productListLimit)
		if err != nil {
			return "", store.Patch{}, err
		}
		if len(products) == 0 {
			return reply.NotFound(), store.Patch{}, nil
		}
		patch.ProductId = &products[0].Id
		return reply.ProductList(toProductLines(products)), patch, nil
	}

	return reply.CategoryMenu(matched, subcategories), patch, nil
}

func (s *dialogService) handleViewSubcategory(ctx context.Context, tenantId, rawCategory, rawSubcategory string) (string, store.Patch, error) {
	if rawCategory == "" || rawSubcategory == "" {
		return reply.NotFound(), store.Patch{}, nil
	}

	matchedCategory, err := s.resolver.ResolveCategory(ctx, tenantId, rawCategory)
	if err != nil {
		return "", store.Patch{}, err
	}
	if matchedCategory == "" {
		return reply.NotFound(), store.Patch{}, nil
	}

	matchedSub, err := s.resolver.ResolveSubcategory(ctx, tenantId, matchedCategory, rawSubcategory)
	if err != nil {
		return "", store.Patch{}, err
	}
	if matchedSub == "" {
		return reply.NotFound(), store.Patch{}, nil
	}

	products, err := s.browser.ListAvailableProducts(ctx, tenantId, matchedCategory, matchedSub, productListLimit)
	if err != nil {
		return "", store.Patch{}, err
	}
	if len(products) == 0 {
		return reply.NotFound(), store.Patch{}, nil
	}

	patch := store.Patch{
		Category:    &matchedCategory,
		Subcategory: &matchedSub,
		ProductId:   &products[0].Id,
	}
	return reply.ProductList(toProductLines(products)), patch, nil
}

func (s *dialogService) handleProductQuestion(ctx context.Context, company *entity.Company, session *store.Session, rawProduct, userMessage string) (string, store.Patch, error) {
	tenantId := company.Id.String()

	// The session anchor only answers anaphora ("how much is it?"). A
	// named product that misses both the direct and fuzzy lookups stays a
	// miss; silently answering about the previous product would mislead.
	product, err := s.resolver.ResolveProduct(ctx, tenantId, strings.TrimSpace(rawProduct), session.LastProductId)
	if err != nil {
		return "", store.Patch{}, err
	}
	if product == nil {
		return reply.NotFound(), store.Patch{}, nil
	}

	patch := store.Patch{ProductId: &product.Id}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	answer, err := s.generator.ProductAnswer(genCtx, reply.ProductContext{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Subcategory: product.Subcategory,
		CompanyName: company.Name,
	}, userMessage)
	if err != nil || answer == "" {
		if err != nil {
			s.log.Warn("dialog", "Product answer generation failed", map[string]interface{}{
				"error":   err.Error(),
				"product": product.Name,
			})
		}
		// Apology offers a human but never sets the hand-off flag itself.
		return reply.TechnicalApology(), patch, nil
	}

	return answer, patch, nil
}

func (s *dialogService) handleListProducts(ctx context.Context, tenantId, rawCategory, rawSubcategory string, session *store.Session) (string, store.Patch, error) {
	category := strings.TrimSpace(rawCategory)
	if category == "" {
		category = session.LastCategory
	}
	subcategory := strings.TrimSpace(rawSubcategory)
	if subcategory == "" {
		subcategory = session.LastSubcategory
	}

	var matchedCategory, matchedSub string
	var err error
	if category != "" {
		matchedCategory, err = s.resolver.ResolveCategory(ctx, tenantId, category)
		if err != nil {
			return "", store.Patch{}, err
		}
		if matchedCategory == "" {
			return reply.NotFound(), store.Patch{}, nil
		}
		if subcategory != "" {
			matchedSub, err = s.resolver.ResolveSubcategory(ctx, tenantId, matchedCategory, subcategory)
			if err != nil {
				return "", store.Patch{}, err
			}
		}
	}

	products, err := s.browser.ListAvailableProducts(ctx, tenantId, matchedCategory, matchedSub, productListLimit)
	if err != nil {
		return "", store.Patch{}, err
	}
	if len(products) == 0 {
		return reply.EmptyCatalog(), store.Patch{}, nil
	}

	patch := store.Patch{ProductId: &products[0].Id}
	if matchedCategory != "" {
		patch.Category = &matchedCategory
	}
	if matchedSub != "" {
		patch.Subcategory = &matchedSub
	}
	return reply.ProductList(toProductLines(products)), patch, nil
}

func (s *dialogService) handleHandoff(ctx context.Context, session *store.Session, lastMessage string) *dto.TurnResult {
	session.HandedOff = true

	if s.eventPub != nil {
		event := events.NewHandoffRequested(session.TenantId, session.UserId, lastMessage)
		if err := s.eventPub.Publish(ctx, event); err != nil {
			s.log.Warn("dialog", "Failed to publish handoff event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.TurnResult{
		Reply:     reply.HandoffAck(),
		Intent:    string(intent.IntentTalkToHuman),
		HandedOff: true,
	}
}

// deliver queues the reply on the outbound topic and returns the result.
func (s *dialogService) deliver(ctx context.Context, msg *dto.InboundMessage, result *dto.TurnResult) (*dto.TurnResult, error) {
	if result.Reply == "" {
		return result, nil
	}

	payload, err := json.Marshal(&dto.OutboundReply{
		PhoneNumberId: msg.PhoneNumberId,
		To:            msg.From,
		Body:          result.Reply,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Error("dialog", "Failed to queue outbound reply", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return result, nil
}

func toProductLines(products []*catalog.Product) []reply.ProductLine {
	lines := make([]reply.ProductLine, len(products))
	for i, p := range products {
		lines[i] = reply.ProductLine{Name: p.Name, Price: p.Price}
	}
	return lines
}
