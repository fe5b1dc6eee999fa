package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"restaurant-client/internal/domain/event"
	"restaurant-client/internal/domain/reservation"
)

// CreateReservation submits a table reservation request.
func (c *Client) CreateReservation(ctx context.Context, req reservation.Request) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("reservationDatetime")
	e.Str(req.DateTime.Format(time.RFC3339))
	e.FieldStart("numberOfGuests")
	e.Int(req.Guests)
	if req.Notes != "" {
		e.FieldStart("notes")
		e.Str(req.Notes)
	}
	e.ObjEnd()

	_, err := c.do(ctx, http.MethodPost, "/reservations", e.Bytes(), false)
	return err
}

// ListMyReservations fetches the guest's own reservation list.
func (c *Client) ListMyReservations(ctx context.Context) ([]reservation.Summary, error) {
	data, err := c.get(ctx, "/reservations/my")
	if err != nil {
		return nil, err
	}

	rows := make([]reservation.Summary, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var row reservation.Summary
		if oerr := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "id":
				row.ID, err = d.Int64()
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
		return nil, errors.Wrapf(ErrMalformedResponse, "decode reservations: %s", err)
	}
	return rows, nil
}

// CreateEvent submits a private event request.
func (c *Client) CreateEvent(ctx context.Context, req event.Request) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("type")
	e.Str(req.Type)
	e.FieldStart("eventDatetime")
	e.Str(req.DateTime.Format(time.RFC3339))
	e.FieldStart("numberOfGuests")
	e.Int(req.Guests)
	e.FieldStart("menuSelection")
	e.ArrStart()
	for _, id := range req.MenuSelection {
		e.Int64(id)
	}
	e.ArrEnd()
	e.ObjEnd()

	_, err := c.do(ctx, http.MethodPost, "/events", e.Bytes(), false)
	return err
}

// ListMyEvents fetches the guest's own event request list.
func (c *Client) ListMyEvents(ctx context.Context) ([]event.Summary, error) {
	data, err := c.get(ctx, "/events/my")
	if err != nil {
		return nil, err
	}

	rows := make([]event.Summary, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var row event.Summary
		if oerr := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "id":
				row.ID, err = d.Int64()
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
		return nil, errors.Wrapf(ErrMalformedResponse, "decode events: %s", err)
	}
	return rows, nil
}
