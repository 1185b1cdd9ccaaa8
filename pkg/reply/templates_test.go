package reply

import (
	"strings"
	"testing"
)

func TestCategoryMenu(t *testing.T) {
	got := CategoryMenu("Calças", []string{"Jeans", "", "Moletom"})

	if !strings.Contains(got, "*Calças*") {
		t.Errorf("missing category name: %q", got)
	}
	if !strings.Contains(got, "• Jeans") || !strings.Contains(got, "• Moletom") {
		t.Errorf("missing subcategory bullets: %q", got)
	}
	if strings.Contains(got, "• \n") {
		t.Errorf("blank subcategory leaked into list: %q", got)
	}
}

func TestProductList(t *testing.T) {
	got := ProductList([]ProductLine{
		{Name: "Calça Jeans Slim", Price: 129.9},
		{Name: "Camisa Polo", Price: 89},
	})

	if !strings.Contains(got, "• Calça Jeans Slim — R$129.90") {
		t.Errorf("missing priced line: %q", got)
	}
	if !strings.Contains(got, "• Camisa Polo — R$89.00") {
		t.Errorf("missing priced line: %q", got)
	}
}

func TestNotFoundAlwaysSuggestsBrowsing(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := NotFound()
		if !strings.Contains(got, "Tente buscar uma categoria ou subcategoria.") {
			t.Fatalf("missing browse hint: %q", got)
		}
	}
}

func TestGreetingListsCategories(t *testing.T) {
	got := Greeting([]string{"Calças", "Camisas"})
	if !strings.HasPrefix(got, "Olá!") {
		t.Errorf("greeting should open with Olá!: %q", got)
	}
	if !strings.Contains(got, "• Calças") || !strings.Contains(got, "• Camisas") {
		t.Errorf("missing category bullets: %q", got)
	}
}

func TestStoreInfo(t *testing.T) {
	got := StoreInfo("Endereço", "Rua das Flores, 123")
	if got != "Endereço: Rua das Flores, 123" {
		t.Errorf("unexpected reply: %q", got)
	}

	fallback := StoreInfo("Endereço", "")
	if !strings.Contains(fallback, "atendente") {
		t.Errorf("empty field should offer a human: %q", fallback)
	}
}
