package cart

import (
	"github.com/shopspring/decimal"

	"github.com/vilaverde-labs/shop-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Close(c *models.Cart) error {
	if err := CanClose(Status(c.Status)); err != nil {
		return err
	}

	c.Status = string(StatusClosed)
	return nil
}

func Pay(c *models.Cart) error {
	if err := CanPay(Status(c.Status)); err != nil {
		return err
	}

	total := Total(c.Items)
	c.Status = string(StatusPaid)
	c.TotalValue = &total
	return nil
}

// Total soma preço capturado × quantidade sobre os itens atuais.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
