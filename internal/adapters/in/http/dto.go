package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Amount is a decimal sent either as a JSON number or as text ("0,5" included).
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*a = Amount(text)
		return nil
	}
	*a = Amount(data)
	return nil
}

// Text returns the raw value, nil when the field was absent.
func (a *Amount) Text() *string {
	if a == nil {
		return nil
	}
	text := string(*a)
	return &text
}

func (a *Amount) decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(string(*a), ",", ".")))
}

type ItemInput struct {
	ProductID *openapi_types.UUID `json:"productId,omitempty"`
	Name      string              `json:"name,omitempty"`
	Quantity  *Amount             `json:"quantity,omitempty"`
	Price     *Amount             `json:"price,omitempty"`
	Note      string              `json:"note,omitempty"`
}

type NewOrder struct {
	CustomerID   *openapi_types.UUID `json:"customerId,omitempty"`
	Table        string              `json:"table,omitempty"`
	ShipmentKind string              `json:"shipmentKind,omitempty"`
	Address      string              `json:"address,omitempty"`
	Note         string              `json:"note,omitempty"`
	Items        []ItemInput         `json:"items,omitempty"`
}

type NewItems struct {
	Items []ItemInput `json:"items"`
}

type ItemPatch struct {
	Quantity *Amount `json:"quantity,omitempty"`
	Price    *Amount `json:"price,omitempty"`
	Status   *string `json:"status,omitempty"`
	Note     *string `json:"note,omitempty"`
}

type ShipmentInput struct {
	ItemIDs []openapi_types.UUID `json:"itemIds,omitempty"`
	Kind    *string              `json:"kind,omitempty"`
	Address *string              `json:"address,omitempty"`
	Note    *string              `json:"note,omitempty"`
	Status  *string              `json:"status,omitempty"`
}

type OrderPatch struct {
	Status    *string `json:"status,omitempty"`
	Surcharge *bool   `json:"surcharge,omitempty"`
}

type Item struct {
	ID         kernel.UUID       `json:"id"`
	ShipmentID *kernel.UUID      `json:"shipmentId,omitempty"`
	ProductID  *kernel.UUID      `json:"productId,omitempty"`
	Name       string            `json:"name"`
	Quantity   decimal.Decimal   `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	LineTotal  decimal.Decimal   `json:"lineTotal"`
	Status     status.Status     `json:"status"`
	Category   order.CategoryKey `json:"category"`
	Note       string            `json:"note,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type Shipment struct {
	ID        kernel.UUID        `json:"id"`
	Kind      order.ShipmentKind `json:"kind"`
	Address   string             `json:"address,omitempty"`
	Note      string             `json:"note,omitempty"`
	Status    status.Status      `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	ItemIDs   []kernel.UUID      `json:"itemIds"`
}

type CategoryStatus struct {
	Category  order.CategoryKey `json:"category"`
	Status    status.Status     `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type Order struct {
	ID            kernel.UUID        `json:"id"`
	Sequence      int                `json:"sequence"`
	BusinessDate  openapi_types.Date `json:"businessDate"`
	CustomerID    *kernel.UUID       `json:"customerId,omitempty"`
	Table         string             `json:"table,omitempty"`
	Note          string             `json:"note,omitempty"`
	Status        status.Status      `json:"status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Surcharge     bool               `json:"surcharge"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Items         []Item             `json:"items"`
	Shipments     []Shipment         `json:"shipments"`
	Categories    []CategoryStatus   `json:"categories"`
	SkippedFields []string           `json:"skippedFields,omitempty"`
}

type OrderSummary struct {
	ID           kernel.UUID        `json:"id"`
	Sequence     int                `json:"sequence"`
	BusinessDate openapi_types.Date `json:"businessDate"`
	Table        string             `json:"table,omitempty"`
	Status       status.Status      `json:"status"`
	Total        decimal.Decimal    `json:"total"`
	ItemCount    int                `json:"itemCount"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type ProductInput struct {
	Name     string  `json:"name"`
	Price    *Amount `json:"price"`
	Category string  `json:"category,omitempty"`
}

// Product mirrors queries.ProductView field for field.
type Product struct {
	ID       kernel.UUID       `json:"id"`
	Name     string            `json:"name"`
	Price    decimal.Decimal   `json:"price"`
	Category string            `json:"category,omitempty"`
	Kitchen  order.CategoryKey `json:"kitchen"`
}

type LastUpdated struct {
	LastUpdated time.Time `json:"lastUpdated"`
}

func toKernelUUID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return parsed, nil
}

func (in ItemInput) line(idx int) (commands.ItemLine, error) {
	line := commands.ItemLine{
		Name:     in.Name,
		Quantity: decimal.NewFromInt(1),
		Note:     in.Note,
	}

	if in.ProductID != nil {
		id, err := toKernelUUID(fmt.Sprintf("items[%d].productId", idx), *in.ProductID)
		if err != nil {
			return commands.ItemLine{}, err
		}
		line.ProductID = &id
	}
	if in.Quantity != nil {
		quantity, err := in.Quantity.decimal()
		if err != nil {
			return commands.ItemLine{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].quantity", idx), err)
		}
		line.Quantity = quantity
	}
	if in.Price != nil {
		price, err := in.Price.decimal()
		if err != nil {
			return commands.ItemLine{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].price", idx), err)
		}
		line.Price = &price
	}

	return line, nil
}

func itemLines(inputs []ItemInput) ([]commands.ItemLine, error) {
	lines := make([]commands.ItemLine, 0, len(inputs))
	for i, in := range inputs {
		line, err := in.line(i)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (in ShipmentInput) command() (commands.ShipmentInput, error) {
	out := commands.ShipmentInput{
		Kind:    in.Kind,
		Address: in.Address,
		Note:    in.Note,
		Status:  in.Status,
	}
	for i, raw := range in.ItemIDs {
		id, err := toKernelUUID(fmt.Sprintf("itemIds[%d]", i), raw)
		if err != nil {
			return commands.ShipmentInput{}, err
		}
		out.ItemIDs = append(out.ItemIDs, id)
	}
	return out, nil
}

func toOrder(v queries.OrderView) Order {
	resp := Order{
		ID:           v.ID,
		Sequence:     v.Sequence,
		BusinessDate: openapi_types.Date{Time: v.BusinessDate},
		CustomerID:   v.CustomerID,
		Table:        v.Table,
		Note:         v.Note,
		Status:       v.Status,
		Subtotal:     v.Subtotal,
		Surcharge:    v.Surcharge,
		Total:        v.Total,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
		Items:        make([]Item, 0, len(v.Items)),
		Shipments:    make([]Shipment, 0, len(v.Shipments)),
		Categories:   make([]CategoryStatus, 0, len(v.Categories)),
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, Item(it))
	}
	for _, s := range v.Shipments {
		resp.Shipments = append(resp.Shipments, Shipment(s))
	}
	for _, c := range v.Categories {
		resp.Categories = append(resp.Categories, CategoryStatus{
			Category:  c.Key,
			Status:    c.Status,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return resp
}

func toOrderSummaries(list []queries.OrderSummary) []OrderSummary {
	resp := make([]OrderSummary, 0, len(list))
	for _, s := range list {
		resp = append(resp, OrderSummary{
			ID:           s.ID,
			Sequence:     s.Sequence,
			BusinessDate: openapi_types.Date{Time: s.BusinessDate},
			Table:        s.Table,
			Status:       s.Status,
			Total:        s.Total,
			ItemCount:    s.ItemCount,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return resp
}
