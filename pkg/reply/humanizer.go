package reply

import (
	"context"
	"fmt"
	"strings"

	"whatsapp-storefront-be/pkg/llm"
)

// Humanizer rewrites a canned reply into more natural phrasing. Any
// failure falls back to the base text, so it can never block a turn.
type Humanizer struct {
	llmProvider llm.LLMProvider
}

func NewHumanizer(llmProvider llm.LLMProvider) *Humanizer {
	return &Humanizer{llmProvider: llmProvider}
}

// Rewrite returns a friendlier rendition of baseText, or baseText itself
// when the model is unavailable or produces nothing usable.
func (h *Humanizer) Rewrite(ctx context.Context, baseText, companyName string) string {
	prompt := fmt.Sprintf(`Você é um atendente humano de WhatsApp da empresa %q.

REGRAS IMPORTANTES:
- NÃO adicione informações novas
- NÃO invente preços, promoções ou condições
- NÃO faça perguntas novas
- NÃO mude o significado do texto
- Apenas torne a mensagem mais natural, educada e amigável
- Linguagem simples, brasileira e profissional
- Mensagem curta (WhatsApp)

TEXTO ORIGINAL:
"""
%s
"""

REESCREVA O TEXTO:`, companyName, baseText)

	response, err := h.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(120),
	)
	if err != nil {
		return baseText
	}

	rewritten := strings.TrimSpace(response)
	if rewritten == "" {
		return baseText
	}
	return rewritten
}
