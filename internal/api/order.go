package api

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"restaurant-client/internal/domain/order"
)

// CreateOrder posts an order creation request and returns the
// server-assigned order id. The response must carry orderId; a response
// without it is malformed, not something to guess around.
func (c *Client) CreateOrder(ctx context.Context, req order.CreateRequest) (int64, error) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range req.Items {
		e.ObjStart()
		e.FieldStart("menuItemId")
		e.Int64(item.MenuItemID)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("type")
	e.Str(string(req.Type))
	e.FieldStart("notes")
	if req.Notes != "" {
		e.Str(req.Notes)
	} else {
		e.Null()
	}
	e.FieldStart("deliveryAddress")
	if req.Type == order.TypeDelivery {
		e.Str(req.DeliveryAddress)
	} else {
		e.Null()
	}
	e.ObjEnd()

	data, err := c.do(ctx, http.MethodPost, "/orders", e.Bytes(), true)
	if err != nil {
		return 0, err
	}

	var (
		orderID int64
		found   bool
	)
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) == "orderId" {
			v, err := d.Int64()
			if err != nil {
				return err
			}
			orderID = v
			found = true
			return nil
		}
		return d.Skip()
	}); err != nil {
		return 0, errors.Wrapf(ErrMalformedResponse, "decode order response: %s", err)
	}
	if !found {
		return 0, errors.Wrap(ErrMalformedResponse, "orderId missing")
	}
	return orderID, nil
}

// ListMyOrders fetches the guest's order history.
func (c *Client) ListMyOrders(ctx context.Context) ([]order.Summary, error) {
	data, err := c.get(ctx, "/orders/my")
	if err != nil {
		return nil, err
	}

	rows := make([]order.Summary, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		row, err := decodeOrderSummary(d)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode order history: %s", err)
	}
	return rows, nil
}

func decodeOrderSummary(d *jx.Decoder) (order.Summary, error) {
	var row order.Summary
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			row.ID, err = d.Int64()
		case "total_price":
			row.TotalPrice, err = decodeDecimal(d)
		case "type":
			var s string
			s, err = d.Str()
			row.Type = order.Type(s)
		case "status":
			var s string
			s, err = d.Str()
			row.Status = order.Status(s)
		case "created_at":
			row.CreatedAt, err = decodeTime(d)
		case "items":
			if d.Next() == jx.Null {
				return d.Null()
			}
			return d.Arr(func(d *jx.Decoder) error {
				line, lerr := decodeLineSummary(d)
				if lerr != nil {
					return lerr
				}
				row.Items = append(row.Items, line)
				return nil
			})
		default:
			return d.Skip()
		}
		return err
	})
	return row, err
}

func decodeLineSummary(d *jx.Decoder) (order.LineSummary, error) {
	var line order.LineSummary
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "name":
			line.Name, err = d.Str()
		case "quantity":
			line.Quantity, err = d.Int()
		case "price":
			line.Price, err = decodeDecimal(d)
		default:
			return d.Skip()
		}
		return err
	})
	return line, err
}
