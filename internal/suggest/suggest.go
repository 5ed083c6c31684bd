// Package suggest guesses a category for items that arrive without one.
package suggest

import (
	"strings"

	"github.com/coelhor/feira/internal/model"
)

// Category returns a category for the given item name. The product bank is
// consulted first (exact name, then substring), then a keyword table, and
// the fallback category is returned when nothing matches.
func Category(itemName string, products []model.Item) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return model.FallbackCategory
	}

	for _, p := range products {
		if strings.ToLower(p.Name) == name {
			return p.Category
		}
	}
	for _, p := range products {
		bank := strings.ToLower(p.Name)
		if strings.Contains(name, bank) || strings.Contains(bank, name) {
			return p.Category
		}
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return model.FallbackCategory
}

var exactMatch = map[string]string{
	// Alimentos
	"arroz":     "Alimentos",
	"feijão":    "Alimentos",
	"feijao":    "Alimentos",
	"macarrão":  "Alimentos",
	"macarrao":  "Alimentos",
	"açúcar":    "Alimentos",
	"acucar":    "Alimentos",
	"sal":       "Alimentos",
	"óleo":      "Alimentos",
	"oleo":      "Alimentos",
	"farinha":   "Alimentos",
	"leite":     "Alimentos",
	"pão":       "Alimentos",
	"pao":       "Alimentos",
	"café":      "Alimentos",
	"cafe":      "Alimentos",
	"manteiga":  "Alimentos",
	"queijo":    "Alimentos",
	"presunto":  "Alimentos",
	"frango":    "Alimentos",
	"carne":     "Alimentos",
	"picanha":   "Alimentos",
	"linguiça":  "Alimentos",
	"linguica":  "Alimentos",
	"ovos":      "Alimentos",
	"banana":    "Alimentos",
	"maçã":      "Alimentos",
	"maca":      "Alimentos",
	"tomate":    "Alimentos",
	"cebola":    "Alimentos",
	"alho":      "Alimentos",
	"batata":    "Alimentos",
	"alface":    "Alimentos",
	"iogurte":   "Alimentos",
	"biscoito":  "Alimentos",
	"chocolate": "Alimentos",

	// Bebidas
	"água":         "Bebidas",
	"agua":         "Bebidas",
	"cerveja":      "Bebidas",
	"refrigerante": "Bebidas",
	"guaraná":      "Bebidas",
	"guarana":      "Bebidas",
	"suco":         "Bebidas",
	"vinho":        "Bebidas",
	"chá":          "Bebidas",
	"cha":          "Bebidas",

	// Higiene
	"sabonete":        "Higiene",
	"shampoo":         "Higiene",
	"condicionador":   "Higiene",
	"desodorante":     "Higiene",
	"papel higiênico": "Higiene",
	"papel higienico": "Higiene",
	"escova de dente": "Higiene",

	// Limpeza
	"detergente":     "Limpeza",
	"sabão":          "Limpeza",
	"sabao":          "Limpeza",
	"amaciante":      "Limpeza",
	"desinfetante":   "Limpeza",
	"esponja":        "Limpeza",
	"água sanitária": "Limpeza",
	"agua sanitaria": "Limpeza",
}

// substringMatches is ordered: longer, more specific keywords first so
// "água sanitária" wins over "água".
var substringMatches = []struct {
	keyword  string
	category string
}{
	{"água sanitária", "Limpeza"},
	{"agua sanitaria", "Limpeza"},
	{"papel higiênico", "Higiene"},
	{"papel higienico", "Higiene"},
	{"creme dental", "Higiene"},
	{"pasta de dente", "Higiene"},
	{"sabão em pó", "Limpeza"},
	{"sabao em po", "Limpeza"},
	{"limpa", "Limpeza"},
	{"detergente", "Limpeza"},
	{"amaciante", "Limpeza"},
	{"refrigerante", "Bebidas"},
	{"cerveja", "Bebidas"},
	{"suco", "Bebidas"},
	{"vinho", "Bebidas"},
	{"shampoo", "Higiene"},
	{"sabonete", "Higiene"},
	{"desodorante", "Higiene"},
	{"carne", "Alimentos"},
	{"frango", "Alimentos"},
	{"peixe", "Alimentos"},
	{"queijo", "Alimentos"},
	{"pão", "Alimentos"},
	{"pao", "Alimentos"},
	{"leite", "Alimentos"},
	{"café", "Alimentos"},
	{"cafe", "Alimentos"},
	{"arroz", "Alimentos"},
	{"feijão", "Alimentos"},
	{"feijao", "Alimentos"},
}
