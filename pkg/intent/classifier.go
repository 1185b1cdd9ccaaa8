package intent

import (
	"context"
	"fmt"
	"strings"

	"whatsapp-storefront-be/pkg/llm"
)

// Classifier performs pure LLM-based intent classification. It never
// touches the database or sends messages; it only interprets, and the
// orchestrator validates and executes.
type Classifier struct {
	llmProvider llm.LLMProvider
}

func NewClassifier(llmProvider llm.LLMProvider) *Classifier {
	return &Classifier{llmProvider: llmProvider}
}

// Classify analyzes the user message plus the one-step-back session context
// and returns a structured Result. Classification failures degrade to
// UNKNOWN/confidence 0; the error return covers only context cancellation
// so callers can distinguish a dead turn from a soft failure.
func (c *Classifier) Classify(ctx context.Context, text string, session SessionContext) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Unknown(), err
	}

	prompt := c.buildPrompt(text, session)

	// Temperature 0 for deterministic structured output
	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		if ctx.Err() != nil {
			return Unknown(), ctx.Err()
		}
		return Unknown(), nil
	}

	return ParseResult(response), nil
}

func (c *Classifier) buildPrompt(text string, session SessionContext) string {
	var b strings.Builder

	b.WriteString(`You are an intent interpreter for a storefront chatbot. Your ONLY job is to analyze the user's message and return a JSON object.

CRITICAL RULES:
1. Respond ONLY with valid JSON (no markdown, no text before/after)
2. Never invent data. If unsure, return UNKNOWN with confidence < 0.6
3. Always include all 6 fields: intent, category, subcategory, product, attribute, confidence
4. If the user mentions ANY category name (clothing types: calca, jeans, camiseta, vestido, etc.), respond with VIEW_CATEGORY intent

JSON Schema:
{
  "intent": "VIEW_CATEGORY | VIEW_SUBCATEGORY | VIEW_PRODUCT | ASK_PRODUCT_ATTRIBUTE | LIST_CATEGORIES | LIST_PRODUCTS | TALK_TO_HUMAN | UNKNOWN",
  "category": null or string,
  "subcategory": null or string,
  "product": null or string,
  "attribute": null or string,
  "confidence": number between 0.0 and 1.0
}

INTENT DEFINITIONS:
1. LIST_CATEGORIES - user wants to see all product categories ("what do you have?", "show me categories")
2. VIEW_CATEGORY - user names a category ("show me jeans", "quero ver calcas")
3. VIEW_SUBCATEGORY - user names a subcategory, usually with category context ("show me polo shirts", "jeans")
4. VIEW_PRODUCT - user wants one specific product ("tell me about that red shirt")
5. ASK_PRODUCT_ATTRIBUTE - user asks about product details ("what's the price?", "is it washable?")
6. LIST_PRODUCTS - user wants a product list ("show all products", "quero ver os produtos")
7. TALK_TO_HUMAN - user explicitly asks for a person ("quero falar com alguem", "call a human")
8. UNKNOWN - message is unclear or matches nothing

GREETINGS (hi, hello, oi, ola) should return UNKNOWN with low confidence (0.3), NOT TALK_TO_HUMAN.

`)

	b.WriteString("SESSION:\n")
	b.WriteString(fmt.Sprintf("- lastCategory: %s\n", orNone(session.LastCategory)))
	b.WriteString(fmt.Sprintf("- lastSubcategory: %s\n", orNone(session.LastSubcategory)))
	if session.LastProduct != "" {
		b.WriteString("- lastProduct: (exists)\n")
	} else {
		b.WriteString("- lastProduct: (none)\n")
	}
	b.WriteString("If lastCategory exists, prioritize VIEW_SUBCATEGORY intent.\n")
	b.WriteString("If lastProduct exists, prioritize ASK_PRODUCT_ATTRIBUTE intent.\n\n")

	b.WriteString(fmt.Sprintf("Message: %q\n", text))
	b.WriteString("NOW RESPOND WITH JSON ONLY - NO MARKDOWN, NO TEXT.")

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
