package storage

// SparePart is a "PDR" (pièce de rechange) with its stock.
type SparePart struct {
	Code          string `json:"code"`
	Replacement   string `json:"replacement"`
	ComponentName string `json:"component_name"`
	Quantity      int    `json:"quantity"`
}

func (p SparePart) Validate() error {
	if p.Code == "" {
		return NewValidationError("code", "обязательное поле")
	}
	if p.Quantity < 0 {
		return NewValidationError("quantity", "количество не может быть отрицательным")
	}
	return nil
}

// Decremented returns the quantity after one part was used, clamped at zero.
func (p SparePart) Decremented() int {
	if p.Quantity <= 0 {
		return 0
	}
	return p.Quantity - 1
}
