// Package gateway builds the signed requests handed to the payment gateways.
package gateway

// Merchant is the shop's identity at the gateway.
type Merchant struct {
	ShopID int
	Secret string
}

type Field struct {
	Name  string
	Value string
}

// Form is an HTML form the customer's browser submits to the gateway.
type Form struct {
	Action string
	Fields []Field
}

func (f Form) Value(name string) (string, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}
