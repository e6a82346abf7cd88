package catalogue

// Product is a bookable catalogue entry. Prices are in pence.
// DepositOnly entries list a fixed down-payment; the real price is agreed
// with the customer after the order comes in.
type Product struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	PricePence  int64  `json:"pricePence"`
	DepositOnly bool   `json:"depositOnly"`
}

// Extra is an optional add-on selected alongside a product.
type Extra struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PricePence int64  `json:"pricePence"`
}

var products = []Product{
	{ID: "brownie-tower", Label: "Brownie/Blondie Tower", PricePence: 4000},
	{ID: "cupcakes-6", Label: "Cupcake box of 6", PricePence: 1200},
	{ID: "cupcakes-12", Label: "Cupcake box of 12", PricePence: 2400},
	{ID: "cupcakes-24", Label: "Cupcake box of 24", PricePence: 4800},
	{ID: "brownies-box", Label: "Brownies/Blondies box", PricePence: 2200},
	{ID: "cheesecake-single", Label: "Cheesecake (single)", PricePence: 3000},
	{ID: "cheesecake-double", Label: "Cheesecake (double)", PricePence: 5000},
	{ID: "tray-bake", Label: "Tray bake", PricePence: 3000},
	{ID: "bento-4", Label: "Bento Box with 4 cupcakes", PricePence: 3500},
	{ID: "bento-8", Label: "Bento Box with 8 cupcakes", PricePence: 4500},
	{ID: "other-cake", Label: "Other Cake", PricePence: 2000, DepositOnly: true},
}

var extras = []Extra{
	{ID: "none", Label: "No extras", PricePence: 0},
	{ID: "strawberries", Label: "Chocolate covered strawberries", PricePence: 500},
	{ID: "toppers", Label: "Cake toppers (specify in details)", PricePence: 1000},
	{ID: "cupcake-toppers-6", Label: "Cupcake toppers - personalised (box of 6)", PricePence: 300},
	{ID: "cupcake-toppers-12", Label: "Cupcake toppers - personalised (box of 12)", PricePence: 600},
	{ID: "cupcake-toppers-24", Label: "Cupcake toppers - personalised (box of 24)", PricePence: 1200},
	{ID: "decorated-toppers-6", Label: "Highly decorated cupcake toppers (box of 6)", PricePence: 600},
	{ID: "decorated-toppers-12", Label: "Highly decorated cupcake toppers (box of 12)", PricePence: 1200},
	{ID: "decorated-toppers-24", Label: "Highly decorated cupcake toppers (box of 24)", PricePence: 2400},
}

var (
	productIndex = make(map[string]Product, len(products))
	extraIndex   = make(map[string]Extra, len(extras))
)

func init() {
	for _, p := range products {
		productIndex[p.ID] = p
	}
	for _, e := range extras {
		extraIndex[e.ID] = e
	}
}

func ProductByID(id string) (Product, bool) {
	p, ok := productIndex[id]
	return p, ok
}

func ExtraByID(id string) (Extra, bool) {
	e, ok := extraIndex[id]
	return e, ok
}

// Products returns the catalogue in display order.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// Extras returns the add-on list in display order.
func Extras() []Extra {
	out := make([]Extra, len(extras))
	copy(out, extras)
	return out
}
