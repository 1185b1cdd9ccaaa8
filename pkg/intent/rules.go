package intent

import (
	"strings"

	"whatsapp-storefront-be/pkg/textutil"
)

// RuleAction is the outcome of the deterministic prefilter that runs before
// the LLM classifier. Greeting and store-info actions are answered directly
// by the orchestrator from tenant data; the rest map onto intents.
type RuleAction string

const (
	RuleNone           RuleAction = ""
	RuleGreeting       RuleAction = "GREETING"
	RuleAddress        RuleAction = "ADDRESS"
	RuleBusinessHours  RuleAction = "BUSINESS_HOURS"
	RulePayment        RuleAction = "PAYMENT"
	RuleListCategories RuleAction = "LIST_CATEGORIES"
	RuleListProducts   RuleAction = "LIST_PRODUCTS"
	RuleTalkToHuman    RuleAction = "TALK_TO_HUMAN"
)

// greetingPhrases match the whole normalized message.
var greetingPhrases = map[string]bool{
	"bom dia":   true,
	"boa tarde": true,
	"boa noite": true,
	"e ai":      true,
	"tudo bem":  true,
}

// greetingTokens match any single token of the message.
var greetingTokens = map[string]bool{
	"oi":    true,
	"ola":   true,
	"oie":   true,
	"ei":    true,
	"eai":   true,
	"hello": true,
	"hi":    true,
	"hey":   true,
}

// menuShortcuts are the numeric quick replies from the legacy menu flow.
var menuShortcuts = map[string]RuleAction{
	"1": RuleListCategories,
	"2": RuleListProducts,
	"3": RuleTalkToHuman,
}

// keywordRules are substring checks, evaluated LAST: exact shortcut and
// greeting matches must win first so a message that merely contains a
// keyword (e.g. a product called "pagamento") is not misrouted when the
// user typed something more specific. Order within the slice matters too.
var keywordRules = []struct {
	substrings []string
	action     RuleAction
}{
	{[]string{"falar com", "atendente", "humano", "pessoa de verdade"}, RuleTalkToHuman},
	{[]string{"endereco", "onde fica", "localizacao"}, RuleAddress},
	{[]string{"horario", "que horas"}, RuleBusinessHours},
	{[]string{"pagamento", "formas de pagar", "pix", "cartao de credito"}, RulePayment},
}

// MatchRules runs the deterministic vocabulary checks over the normalized
// text. First matching rule wins; RuleNone means the message goes to the
// LLM classifier.
func MatchRules(text string) RuleAction {
	normalized := textutil.Normalize(text)
	if normalized == "" {
		return RuleNone
	}

	if action, ok := menuShortcuts[normalized]; ok {
		return action
	}

	if greetingPhrases[normalized] {
		return RuleGreeting
	}
	for _, token := range strings.Fields(normalized) {
		if greetingTokens[token] {
			return RuleGreeting
		}
	}

	for _, rule := range keywordRules {
		for _, sub := range rule.substrings {
			if strings.Contains(normalized, sub) {
				return rule.action
			}
		}
	}

	return RuleNone
}
