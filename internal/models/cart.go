package models

// CartLine is one product's entry in a cart. Name, price and volume are
// copied from the product when the line is created and are not refreshed
// from the catalog afterwards.
type CartLine struct {
	ProductID int    `json:"id" validate:"required,gt=0"`
	Name      string `json:"name"`
	Price     int    `json:"price" validate:"gte=0"`
	Volume    string `json:"volume"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// Cart is an ordered list of lines with at most one line per product.
// Lines keep the order in which their product was first added.
type Cart []CartLine

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID int) int {
	for i := range c {
		if c[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments the quantity of the product's line, or appends a new line
// with quantity 1 and a snapshot of the product's display values.
func (c Cart) Add(product Product) Cart {
	if i := c.Find(product.ID); i >= 0 {
		c[i].Quantity++
		return c
	}
	return append(c, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Volume:    product.Volume,
		Quantity:  1,
	})
}

// Remove drops the line for productID if there is one.
func (c Cart) Remove(productID int) Cart {
	out := c[:0]
	for _, line := range c {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}

// SetQuantity sets the quantity of the product's line. A quantity of zero or
// less removes the line. It reports whether the cart changed shape or value;
// a missing product leaves the cart untouched.
func (c Cart) SetQuantity(productID, quantity int) (Cart, bool) {
	i := c.Find(productID)
	if i < 0 {
		return c, false
	}
	if quantity <= 0 {
		return c.Remove(productID), true
	}
	c[i].Quantity = quantity
	return c, true
}

// TotalItemCount is the sum of all line quantities.
func (c Cart) TotalItemCount() int {
	total := 0
	for _, line := range c {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines.
func (c Cart) TotalPrice() int {
	total := 0
	for _, line := range c {
		total += line.Price * line.Quantity
	}
	return total
}

// Subtract returns a new cart with the quantities in taken removed from c.
// Lines that drop to zero are removed; lines absent from taken are kept.
func (c Cart) Subtract(taken Cart) Cart {
	out := Cart{}
	for _, line := range c {
		if i := taken.Find(line.ProductID); i >= 0 {
			line.Quantity -= taken[i].Quantity
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// Clone returns a copy that shares no memory with c.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
