package reply

import (
	"fmt"
	"math/rand"
	"strings"
)

// Template pools for the canned storefront replies. One entry is picked at
// random per message so consecutive turns don't read identically.
var (
	categoryIntros = []string{
		"Temos essas opções em",
		"Aqui estão os itens em",
		"Você pode escolher entre",
		"Nossas linhas em",
		"Na categoria",
	}
	categoryQuestions = []string{
		"Qual você gostaria de explorar?",
		"Qual delas te interessa?",
		"Qual você quer conhecer melhor?",
		"O que você procura?",
		"Qual você gostaria de ver?",
	}
	productListIntros = []string{
		"Temos essas opções:",
		"Esses são nossos produtos:",
		"Aqui estão as nossas peças:",
		"Confira o que temos:",
		"Essas são nossas opções:",
	}
	productListQuestions = []string{
		"Fique à vontade para tirar dúvidas sobre qualquer um.",
		"Posso ajudá-lo com informações sobre eles.",
		"Manda a pergunta sobre qualquer um deles!",
		"Qual deles você gostaria de saber mais?",
		"Quer saber detalhes de algum?",
	}
	notFoundLines = []string{
		"Não encontrei nada com esse nome.",
		"Desculpa, não localizei isso.",
		"Hmm, não achei nada assim.",
		"Não temos isso disponível no momento.",
		"Esse item não está no nosso catálogo.",
	}
)

func pick(pool []string) string {
	return pool[rand.Intn(len(pool))]
}

// ProductLine is the minimal product view the list templates need.
type ProductLine struct {
	Name  string
	Price float64
}

// CategoryMenu presents a category's subcategories as a bullet list.
func CategoryMenu(category string, subcategories []string) string {
	items := make([]string, 0, len(subcategories))
	for _, s := range subcategories {
		if s != "" {
			items = append(items, "• "+s)
		}
	}
	return fmt.Sprintf("%s *%s*:\n%s\n\n%s",
		pick(categoryIntros), category, strings.Join(items, "\n"), pick(categoryQuestions))
}

// ProductList presents products with prices.
func ProductList(products []ProductLine) string {
	items := make([]string, len(products))
	for i, p := range products {
		items[i] = fmt.Sprintf("• %s — R$%.2f", p.Name, p.Price)
	}
	return fmt.Sprintf("%s\n%s\n\n%s",
		pick(productListIntros), strings.Join(items, "\n"), pick(productListQuestions))
}

// NotFound is the generic miss reply, nudging the user back to browsing.
func NotFound() string {
	return pick(notFoundLines) + "\nTente buscar uma categoria ou subcategoria."
}

// Greeting opens the conversation with the available categories.
func Greeting(categories []string) string {
	items := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != "" {
			items = append(items, "• "+c)
		}
	}
	return fmt.Sprintf("Olá! 👋 Temos produtos nas seguintes categorias:\n%s\n\nQual você procura?",
		strings.Join(items, "\n"))
}

// CategoryList answers an explicit request for the category menu.
func CategoryList(categories []string) string {
	items := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != "" {
			items = append(items, "• "+c)
		}
	}
	return fmt.Sprintf("📦 Temos produtos nas seguintes categorias:\n%s\n\nQual você procura?",
		strings.Join(items, "\n"))
}

// EmptyCatalog covers tenants with no available products yet.
func EmptyCatalog() string {
	return "No momento não temos produtos cadastrados."
}

// EmptyCatalogGreeting is the greeting variant of EmptyCatalog.
func EmptyCatalogGreeting() string {
	return "Olá! No momento não temos produtos cadastrados."
}

// HandoffAck confirms the escalation to a human agent.
func HandoffAck() string {
	return "👤 Um atendente humano entrará em contato em breve."
}

// HumanInProgress is sent while a conversation is parked with a human.
func HumanInProgress() string {
	return "Um atendente humano está em andamento. Aguarde contato."
}

// TechnicalApology is the catch-all failure reply.
func TechnicalApology() string {
	return "Tive um problema técnico 😕\nQuer falar com um atendente?"
}

// StoreInfo wraps a company data field (address, hours, payment methods)
// in a short sentence.
func StoreInfo(label, value string) string {
	if value == "" {
		return "Não tenho essa informação no momento, mas um atendente pode ajudar. Digite 3 para falar com alguém."
	}
	return fmt.Sprintf("%s: %s", label, value)
}
