package cart

import "github.com/vilaverde-labs/shop-api/internal/httperr"

// ===============================
// Cart Status
// ===============================

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
	StatusPaid   Status = "PAID"
)

// ===============================
// Validations
// ===============================

// CanClose define se um carrinho pode ser fechado
func CanClose(current Status) error {
	if current != StatusOpen {
		return httperr.ErrBusiness("cart_not_open")
	}
	return nil
}

// CanPay define se um carrinho pode ser pago
func CanPay(current Status) error {
	if current != StatusOpen {
		return httperr.ErrBusiness("cart_not_open")
	}
	return nil
}

// CanModifyItems define se os itens do carrinho ainda podem mudar
func CanModifyItems(current Status) error {
	if current != StatusOpen {
		return httperr.ErrBusiness("cart_not_open")
	}
	return nil
}

func InitialStatus() Status {
	return StatusOpen
}
