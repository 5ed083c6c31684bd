package suggest

import (
	"testing"

	"github.com/coelhor/feira/internal/model"
)

var bank = []model.Item{
	{ID: "p1", Name: "Leite", Category: "Alimentos"},
	{ID: "p2", Name: "Água Sanitária", Category: "Limpeza"},
	{ID: "p3", Name: "Refrigerante", Category: "Bebidas"},
}

func TestCategoryFromBankExact(t *testing.T) {
	if got := Category("leite", bank); got != "Alimentos" {
		t.Errorf("leite = %q, want Alimentos", got)
	}
}

func TestCategoryFromBankSubstring(t *testing.T) {
	if got := Category("Leite Integral", bank); got != "Alimentos" {
		t.Errorf("leite integral = %q, want Alimentos", got)
	}
}

func TestCategoryKeywordFallback(t *testing.T) {
	if got := Category("Detergente de coco", nil); got != "Limpeza" {
		t.Errorf("detergente = %q, want Limpeza", got)
	}
	if got := Category("cerveja artesanal", nil); got != "Bebidas" {
		t.Errorf("cerveja = %q, want Bebidas", got)
	}
}

func TestCategorySpecificKeywordWins(t *testing.T) {
	// "água sanitária" must not be classified as a drink
	if got := Category("Água Sanitária 2L", nil); got != "Limpeza" {
		t.Errorf("água sanitária = %q, want Limpeza", got)
	}
}

func TestCategoryUnknown(t *testing.T) {
	if got := Category("Parafuso", nil); got != model.FallbackCategory {
		t.Errorf("parafuso = %q, want %q", got, model.FallbackCategory)
	}
	if got := Category("   ", bank); got != model.FallbackCategory {
		t.Errorf("blank = %q, want %q", got, model.FallbackCategory)
	}
}
