package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// CreatePaymentIntent opens a payment session for the given order and
// returns the session id. Callers must not request a second session for an
// order that already has one.
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID int64) (int64, error) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("orderId")
	e.Int64(orderID)
	e.ObjEnd()

	data, err := c.do(ctx, http.MethodPost, "/payments/intent", e.Bytes(), true)
	if err != nil {
		return 0, err
	}

	var (
		paymentID int64
		found     bool
	)
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) == "paymentId" {
			v, err := d.Int64()
			if err != nil {
				return err
			}
			paymentID = v
			found = true
			return nil
		}
		return d.Skip()
	}); err != nil {
		return 0, errors.Wrapf(ErrMalformedResponse, "decode payment intent response: %s", err)
	}
	if !found {
		return 0, errors.Wrap(ErrMalformedResponse, "paymentId missing")
	}
	return paymentID, nil
}

// ConfirmPayment posts the confirmation for an open payment session. No
// response fields are consumed on success.
func (c *Client) ConfirmPayment(ctx context.Context, paymentID int64, cardNumber string) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("paymentId")
	e.Int64(paymentID)
	e.FieldStart("cardNumber")
	e.Str(cardNumber)
	e.ObjEnd()

	_, err := c.do(ctx, http.MethodPost, "/payments/confirm", e.Bytes(), true)
	return err
}

// PaymentStatus fetches the server-side status of a payment session. Not
// part of the steady-state workflow; useful for support tooling.
func (c *Client) PaymentStatus(ctx context.Context, paymentID int64) (string, error) {
	data, err := c.get(ctx, "/payments/"+strconv.FormatInt(paymentID, 10))
	if err != nil {
		return "", err
	}

	status := ""
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) == "status" {
			s, err := d.Str()
			if err != nil {
				return err
			}
			status = s
			return nil
		}
		return d.Skip()
	}); err != nil {
		return "", errors.Wrapf(ErrMalformedResponse, "decode payment status: %s", err)
	}
	if status == "" {
		return "", errors.Wrap(ErrMalformedResponse, "status missing")
	}
	return status, nil
}
