package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"restaurant-client/internal/domain/event"
	"restaurant-client/internal/domain/order"
	"restaurant-client/internal/domain/reservation"
)

// updateStatus issues the shared partial update used by all three staff
// collections: PUT /{collection}/{id} with body {status}.
func (c *Client) updateStatus(ctx context.Context, collection string, id int64, status string) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str(status)
	e.ObjEnd()

	_, err := c.do(ctx, http.MethodPut, collection+"/"+strconv.FormatInt(id, 10), e.Bytes(), false)
	return err
}

// UpdateOrderStatus transitions a staff-visible order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status order.Status) error {
	return c.updateStatus(ctx, "/admin/orders", id, string(status))
}

// UpdateReservationStatus transitions a staff-visible reservation.
func (c *Client) UpdateReservationStatus(ctx context.Context, id int64, status reservation.Status) error {
	return c.updateStatus(ctx, "/admin/reservations", id, string(status))
}

// UpdateEventStatus transitions a staff-visible event request.
func (c *Client) UpdateEventStatus(ctx context.Context, id int64, status event.Status) error {
	return c.updateStatus(ctx, "/admin/events", id, string(status))
}

// ListAdminOrders fetches the staff order list.
func (c *Client) ListAdminOrders(ctx context.Context) ([]order.AdminOrder, error) {
	data, err := c.get(ctx, "/admin/orders")
	if err != nil {
		return nil, err
	}

	rows := make([]order.AdminOrder, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var row order.AdminOrder
		if oerr := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "id":
				row.ID, err = d.Int64()
			case "user_name":
				row.UserName, err = optStr(d)
			case "user_email":
				row.UserEmail, err = optStr(d)
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
			default:
				return d.Skip()
			}
			return err
		}); oerr != nil {
			return oerr
		}
		rows = append(rows, row)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode admin orders: %s", err)
	}
	return rows, nil
}

// ListAdminReservations fetches the staff reservation list.
func (c *Client) ListAdminReservations(ctx context.Context) ([]reservation.AdminReservation, error) {
	data, err := c.get(ctx, "/admin/reservations")
	if err != nil {
		return nil, err
	}

	rows := make([]reservation.AdminReservation, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var row reservation.AdminReservation
		if oerr := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "id":
				row.ID, err = d.Int64()
			case "user_name":
				row.UserName, err = optStr(d)
			case "user_email":
				row.UserEmail, err = optStr(d)
			case "reservation_datetime":
				row.DateTime, err = decodeTime(d)
			case "number_of_guests":
				row.Guests, err = d.Int()
			case "notes":
				row.Notes, err = optStr(d)
			case "status":
				var s string
				s, err = d.Str()
				row.Status = reservation.Status(s)
			case "created_at":
				row.CreatedAt, err = decodeTime(d)
			default:
				return d.Skip()
			}
			return err
		}); oerr != nil {
			return oerr
		}
		rows = append(rows, row)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode admin reservations: %s", err)
	}
	return rows, nil
}

// ListAdminEvents fetches the staff event request list.
func (c *Client) ListAdminEvents(ctx context.Context) ([]event.AdminEvent, error) {
	data, err := c.get(ctx, "/admin/events")
	if err != nil {
		return nil, err
	}

	rows := make([]event.AdminEvent, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var row event.AdminEvent
		if oerr := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "id":
				row.ID, err = d.Int64()
			case "user_name":
				row.UserName, err = optStr(d)
			case "user_email":
				row.UserEmail, err = optStr(d)
			case "event_type":
				row.Type, err = d.Str()
			case "event_datetime":
				row.DateTime, err = decodeTime(d)
			case "number_of_guests":
				row.Guests, err = d.Int()
			case "status":
				var s string
				s, err = d.Str()
				row.Status = event.Status(s)
			case "created_at":
				row.CreatedAt, err = decodeTime(d)
			default:
				return d.Skip()
			}
			return err
		}); oerr != nil {
			return oerr
		}
		rows = append(rows, row)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode admin events: %s", err)
	}
	return rows, nil
}
