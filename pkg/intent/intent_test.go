package intent

import (
	"testing"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantIntent     Intent
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "clean json",
			raw:            `{"intent":"VIEW_CATEGORY","category":"jeans","subcategory":null,"product":null,"attribute":null,"confidence":0.92}`,
			wantIntent:     IntentViewCategory,
			wantCategory:   "jeans",
			wantConfidence: 0.92,
		},
		{
			name:           "fenced code block",
			raw:            "```json\n{\"intent\":\"LIST_CATEGORIES\",\"category\":null,\"subcategory\":null,\"product\":null,\"attribute\":null,\"confidence\":0.95}\n```",
			wantIntent:     IntentListCategories,
			wantConfidence: 0.95,
		},
		{
			name:           "surrounding prose",
			raw:            "Sure! Here is the classification: {\"intent\":\"TALK_TO_HUMAN\",\"confidence\":0.98}",
			wantIntent:     IntentTalkToHuman,
			wantConfidence: 0.98,
		},
		{
			name:           "lowercase intent is accepted",
			raw:            `{"intent":"view_category","category":"Calças","confidence":0.8}`,
			wantIntent:     IntentViewCategory,
			wantCategory:   "Calças",
			wantConfidence: 0.8,
		},
		{
			name:           "not json at all",
			raw:            "I think the user wants to see jeans.",
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
		{
			name:           "missing confidence",
			raw:            `{"intent":"VIEW_CATEGORY","category":"jeans"}`,
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
		{
			name:           "non-numeric confidence",
			raw:            `{"intent":"VIEW_CATEGORY","confidence":"high"}`,
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
		{
			name:           "confidence out of range",
			raw:            `{"intent":"VIEW_CATEGORY","confidence":1.7}`,
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
		{
			name:           "unknown intent value",
			raw:            `{"intent":"BUY_NOW","confidence":0.9}`,
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
		{
			name:           "empty input",
			raw:            "",
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
		{
			name:           "truncated json",
			raw:            `{"intent":"VIEW_CATEGORY","confidence":`,
			wantIntent:     IntentUnknown,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResult(tt.raw)
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestMatchRules(t *testing.T) {
	tests := []struct {
		text string
		want RuleAction
	}{
		{"Oi", RuleGreeting},
		{"olá!", RuleGreeting},
		{"Bom dia", RuleGreeting},
		{"1", RuleListCategories},
		{"2", RuleListProducts},
		{"3", RuleTalkToHuman},
		{"quero falar com alguém", RuleTalkToHuman},
		{"tem atendente?", RuleTalkToHuman},
		{"qual o endereço da loja?", RuleAddress},
		{"onde fica a loja", RuleAddress},
		{"qual o horário de funcionamento?", RuleBusinessHours},
		{"aceita pix?", RulePayment},
		{"formas de pagamento", RulePayment},
		{"quero ver calças", RuleNone},
		{"jeans", RuleNone},
		{"", RuleNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := MatchRules(tt.text); got != tt.want {
				t.Errorf("MatchRules(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
