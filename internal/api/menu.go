package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"restaurant-client/internal/domain/menu"
)

// ListMenu fetches the menu snapshot. Concurrent callers share a single
// request; every page loads the menu once, and overlapping loads are
// deduplicated.
func (c *Client) ListMenu(ctx context.Context) ([]menu.Item, error) {
	v, err, _ := c.menuFlight.Do("menu", func() (interface{}, error) {
		return c.fetchMenu(ctx)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]menu.Item)
	items := make([]menu.Item, len(shared))
	copy(items, shared)
	return items, nil
}

func (c *Client) fetchMenu(ctx context.Context) ([]menu.Item, error) {
	data, err := c.get(ctx, "/menu")
	if err != nil {
		return nil, err
	}

	items := make([]menu.Item, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		item, derr := decodeMenuItem(d)
		if derr != nil {
			return derr
		}
		items = append(items, item)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode menu: %s", err)
	}
	return items, nil
}

func decodeMenuItem(d *jx.Decoder) (menu.Item, error) {
	var item menu.Item
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id":
			item.ID, err = d.Int64()
		case "name":
			item.Name, err = d.Str()
		case "category":
			item.Category, err = d.Str()
		case "description":
			item.Description, err = optStr(d)
		case "price":
			item.Price, err = decodeDecimal(d)
		case "image_url":
			item.ImageURL, err = optStr(d)
		case "available":
			item.Available, err = decodeBool(d)
		case "dietary_tags":
			item.DietaryTags, err = optStr(d)
		default:
			return d.Skip()
		}
		return err
	})
	return item, err
}

// CreateMenuItem submits a new menu item. The caller reloads the collection
// afterwards to pick up the server-assigned id.
func (c *Client) CreateMenuItem(ctx context.Context, in menu.ItemInput) error {
	body := encodeMenuItemInput(in)
	_, err := c.do(ctx, http.MethodPost, "/menu", body, false)
	return err
}

// UpdateMenuItem replaces the fields of an existing menu item.
func (c *Client) UpdateMenuItem(ctx context.Context, id int64, in menu.ItemInput) error {
	body := encodeMenuItemInput(in)
	_, err := c.do(ctx, http.MethodPut, "/menu/"+strconv.FormatInt(id, 10), body, false)
	return err
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/menu/"+strconv.FormatInt(id, 10), nil, false)
	return err
}

func encodeMenuItemInput(in menu.ItemInput) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("name")
	e.Str(in.Name)
	e.FieldStart("category")
	e.Str(in.Category)
	e.FieldStart("price")
	encodeNum(&e, in.Price)
	e.FieldStart("description")
	if in.Description != "" {
		e.Str(in.Description)
	} else {
		e.Null()
	}
	e.FieldStart("dietary_tags")
	if in.DietaryTags != "" {
		e.Str(in.DietaryTags)
	} else {
		e.Null()
	}
	// The backend stores availability as 0/1.
	e.FieldStart("available")
	if in.Available {
		e.Int(1)
	} else {
		e.Int(0)
	}
	e.ObjEnd()
	return e.Bytes()
}
