package intent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Intent is the resolved user intention for one message.
type Intent string

const (
	IntentListCategories      Intent = "LIST_CATEGORIES"
	IntentViewCategory        Intent = "VIEW_CATEGORY"
	IntentViewSubcategory     Intent = "VIEW_SUBCATEGORY"
	IntentViewProduct         Intent = "VIEW_PRODUCT"
	IntentAskProductAttribute Intent = "ASK_PRODUCT_ATTRIBUTE"
	IntentListProducts        Intent = "LIST_PRODUCTS"
	IntentTalkToHuman         Intent = "TALK_TO_HUMAN"
	IntentUnknown             Intent = "UNKNOWN"
)

var validIntents = map[Intent]bool{
	IntentListCategories:      true,
	IntentViewCategory:        true,
	IntentViewSubcategory:     true,
	IntentViewProduct:         true,
	IntentAskProductAttribute: true,
	IntentListProducts:        true,
	IntentTalkToHuman:         true,
	IntentUnknown:             true,
}

// Result is the structured outcome of classification. Confidence is always
// present and numeric; malformed classifier output degrades to
// UNKNOWN/confidence 0, never to an error.
type Result struct {
	Intent      Intent  `json:"intent"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Product     string  `json:"product"`
	Attribute   string  `json:"attribute"`
	Confidence  float64 `json:"confidence"`
}

// Unknown is the soft-fail sentinel.
func Unknown() Result {
	return Result{Intent: IntentUnknown, Confidence: 0}
}

// SessionContext is the one-step-back memory handed to the classifier.
type SessionContext struct {
	LastCategory    string
	LastSubcategory string
	LastProduct     string
}

// rawResult tolerates nulls and a loosely typed confidence field.
type rawResult struct {
	Intent      *string     `json:"intent"`
	Category    *string     `json:"category"`
	Subcategory *string     `json:"subcategory"`
	Product     *string     `json:"product"`
	Attribute   *string     `json:"attribute"`
	Confidence  interface{} `json:"confidence"`
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ParseResult parses untrusted model output into a Result. It is a total
// function: any parse or schema violation yields the UNKNOWN sentinel.
// Output wrapped in a fenced code block, or surrounded by stray prose, is
// salvaged by extracting the innermost brace-delimited object first.
func ParseResult(raw string) Result {
	payload := extractJSONObject(raw)
	if payload == "" {
		return Unknown()
	}

	var parsed rawResult
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return Unknown()
	}

	if parsed.Intent == nil || *parsed.Intent == "" {
		return Unknown()
	}

	confidence, ok := parsed.Confidence.(float64)
	if !ok || confidence < 0 || confidence > 1 {
		return Unknown()
	}

	resolved := Intent(strings.ToUpper(strings.TrimSpace(*parsed.Intent)))
	if !validIntents[resolved] {
		return Unknown()
	}

	return Result{
		Intent:      resolved,
		Category:    deref(parsed.Category),
		Subcategory: deref(parsed.Subcategory),
		Product:     deref(parsed.Product),
		Attribute:   deref(parsed.Attribute),
		Confidence:  confidence,
	}
}

// extractJSONObject returns the best brace-delimited candidate in raw, or "".
func extractJSONObject(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed
	}

	if m := fencedBlock.FindStringSubmatch(trimmed); m != nil {
		inner := strings.TrimSpace(m[1])
		if strings.HasPrefix(inner, "{") && strings.HasSuffix(inner, "}") {
			return inner
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}

	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
