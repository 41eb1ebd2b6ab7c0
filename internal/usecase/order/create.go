package order

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	SalonID     uint
	ClientName  string
	ClientPhone string
	Items       []ItemInput
}

type CreateOrderOutput struct {
	Order *models.Order `json:"order"`

	// WhatsAppURL is the checkout handoff: there is no payment flow, the
	// buyer finishes the purchase talking to the salon.
	WhatsAppURL string `json:"whatsapp_url"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCreateOrder(db *gorm.DB, audit *audit.Dispatcher) *CreateOrder {
	return &CreateOrder{db: db, audit: audit}
}

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*CreateOrderOutput, error) {

	var salon models.Salon
	if err := uc.db.WithContext(ctx).First(&salon, in.SalonID).Error; err != nil {
		return nil, err
	}

	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("empty_order")
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64

	for _, it := range in.Items {
		var product models.Product
		err := uc.db.WithContext(ctx).
			Where("id = ? AND salon_id = ? AND active = true", it.ProductID, in.SalonID).
			First(&product).Error
		if err != nil {
			return nil, httperr.ErrBusiness("product_not_found")
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(it.Quantity)
	}

	ord := &models.Order{
		Code:        uuid.NewString(),
		SalonID:     in.SalonID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		Items:       items,
		Total:       total,
		Status:      "new",
	}

	if err := uc.db.WithContext(ctx).Create(ord).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &ord.ID,
	})

	return &CreateOrderOutput{
		Order:       ord,
		WhatsAppURL: whatsAppURL(&salon, ord),
	}, nil
}

func whatsAppURL(salon *models.Salon, ord *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá! Gostaria de fazer o pedido %s:\n", ord.Code[:8])
	for _, it := range ord.Items {
		fmt.Fprintf(&b, "- %dx %s (R$ %.2f)\n", it.Quantity, it.Name, it.UnitPrice)
	}
	fmt.Fprintf(&b, "Total: R$ %.2f", ord.Total)

	phone := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, salon.Phone)

	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(b.String())
}
