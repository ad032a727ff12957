package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/shopping.txt
	shoppingRaw string

	//go:embed template/cart.txt
	cartRaw string

	//go:embed template/cart_handoff.txt
	cartHandoffRaw string

	//go:embed template/id_tagging.txt
	idTaggingRaw string

	//go:embed template/formatter.txt
	formatterRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Shopping    string
	Cart        string
	CartHandoff string
	IDTagging   string
	Formatter   string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Shopping:    strings.TrimSpace(shoppingRaw),
		Cart:        strings.TrimSpace(cartRaw),
		CartHandoff: strings.TrimSpace(cartHandoffRaw),
		IDTagging:   strings.TrimSpace(idTaggingRaw),
		Formatter:   strings.TrimSpace(formatterRaw),
	}
}

// ShoppingInstructions returns the shopping agent's system prompt. Without downstream
// restructuring the agent tags product ids itself.
func (p PromptSet) ShoppingInstructions(useStructuring bool) string {
	if useStructuring {
		return p.Shopping
	}
	return p.Shopping + "\n" + p.IDTagging
}

// CartInstructions always carries the id-tagging directive.
func (p PromptSet) CartInstructions() string {
	return p.Cart + "\n" + p.IDTagging
}
