package catalog

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// ProductSnapshot
// ---------------------------------------------------------------------------

// ProductSnapshot is the read model the listing engine renders from: the
// product, its category, and (for bundles) the component lines with the
// component products' current prices.
type ProductSnapshot struct {
	// Product is the product being listed
	Product Product
	// Category is the product's category, nil when uncategorized
	Category *Category
	// Components holds the bundle lines; empty for plain products
	Components []ComponentSnapshot
}

// ComponentSnapshot is one bundle line with the component's current price
type ComponentSnapshot struct {
	// Component is the bundle line
	Component BundleComponent
	// Name is the component product's name
	Name string
	// Price is the component product's current selling price
	Price decimal.Decimal
}

// TotalComponentPrice sums each component's price times its quantity
func (s *ProductSnapshot) TotalComponentPrice() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Components {
		line := c.Price.Mul(decimal.NewFromInt(int64(c.Component.Quantity)))
		total = total.Add(line)
	}
	return total
}

// BasePrice derives the price the listing engine starts from, before any
// template adjustment. Plain products use their own price. Bundles with
// calculated pricing sum component prices and subtract the bundle discount;
// fixed-priced bundles use the bundle's own price field.
func (s *ProductSnapshot) BasePrice() decimal.Decimal {
	if !s.Product.IsBundle {
		return s.Product.Price
	}
	if s.Product.BundlePricingType != BundlePricingCalculated {
		return s.Product.Price
	}

	total := s.TotalComponentPrice()
	discount := total.Mul(s.Product.BundleDiscountPercentage).Div(decimal.NewFromInt(100))
	return total.Sub(discount)
}
