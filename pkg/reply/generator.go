package reply

import (
	"context"
	"fmt"
	"strings"

	"whatsapp-storefront-be/pkg/llm"
)

// minAnswerLength guards against degenerate LLM output. Anything shorter
// is treated as a generation failure.
const minAnswerLength = 5

// ProductContext carries the only facts the generator is allowed to use.
type ProductContext struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Subcategory string
	CompanyName string
}

// Generator produces free-form product answers. It renders facts the
// caller already resolved; it never decides routing.
type Generator struct {
	llmProvider llm.LLMProvider
}

func NewGenerator(llmProvider llm.LLMProvider) *Generator {
	return &Generator{llmProvider: llmProvider}
}

// ProductAnswer answers userMessage about one product using only the
// fields in pc. Returns "" when the model output is unusable so the
// caller can fall back to a template.
func (g *Generator) ProductAnswer(ctx context.Context, pc ProductContext, userMessage string) (string, error) {
	prompt := buildProductPrompt(pc, userMessage)

	response, err := g.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(180),
	)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(response)
	if len([]rune(answer)) < minAnswerLength {
		return "", nil
	}
	return answer, nil
}

func buildProductPrompt(pc ProductContext, userMessage string) string {
	var b strings.Builder

	b.WriteString("VOCÊ É UM ATENDENTE DE LOJA REAL. REGRA FUNDAMENTAL: NUNCA INVENTE INFORMAÇÕES.\n\n")
	b.WriteString("PROIBIÇÕES ABSOLUTAS:\n")
	b.WriteString("1. NÃO invente palavras, características ou conceitos\n")
	b.WriteString("2. NÃO use informações fora dos DADOS DISPONÍVEIS abaixo\n")
	b.WriteString("3. Se não sabe, diga: \"Não tenho essa informação\"\n")
	b.WriteString("4. NÃO inicie com saudações, vá direto ao assunto\n\n")

	b.WriteString("DADOS DISPONÍVEIS (use APENAS esses):\n")
	b.WriteString(fmt.Sprintf("- Nome: %s\n", pc.Name))
	b.WriteString(fmt.Sprintf("- Descrição: %s\n", orMissing(pc.Description)))
	if pc.Price > 0 {
		b.WriteString(fmt.Sprintf("- Preço: R$%.2f\n", pc.Price))
	} else {
		b.WriteString("- Preço: (não informado)\n")
	}
	b.WriteString(fmt.Sprintf("- Categoria: %s\n", pc.Category))
	b.WriteString(fmt.Sprintf("- Subcategoria: %s\n\n", orMissing(pc.Subcategory)))

	b.WriteString("ESCREVA COMO UMA PESSOA REAL:\n")
	b.WriteString("- Natural, sem clichês (\"Perfeito!\", \"Ótima escolha!\")\n")
	b.WriteString("- Conciso (WhatsApp, não email)\n")
	b.WriteString("- No máximo 1 emoji se for relevante\n\n")

	b.WriteString(fmt.Sprintf("Pergunta do cliente: %q\n", userMessage))
	b.WriteString("Responda agora, usando apenas os dados acima.")

	return b.String()
}

func orMissing(s string) string {
	if s == "" {
		return "(não informada)"
	}
	return s
}
