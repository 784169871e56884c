// Package catalog is the client for the product endpoints: paged listing,
// search, and the create/update/delete operations of the product editor.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/logging"
	"github.com/dmitrijs2005/faktura/internal/validate"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var (
	ErrBadFormat = errors.New("invalid products response")
	ErrNoID      = errors.New("product id is required")
)

// Caller performs backend calls; *api.Gateway implements it.
type Caller interface {
	Call(ctx context.Context, req api.Request, out any) error
}

// Page is one page of a product listing.
type Page struct {
	Items []Product
	Total int
	Pages int
	Page  int
	Size  int
}

type Catalog struct {
	api  Caller
	size int
	log  logging.Logger
}

// New returns a catalog listing size products per page. Sizes outside
// 1..MaxPageSize fall back to DefaultPageSize.
func New(c Caller, size int, log logging.Logger) *Catalog {
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Catalog{api: c, size: size, log: log}
}

func (c *Catalog) PageSize() int { return c.size }

// List fetches one page of products, optionally filtered by search.
func (c *Catalog) List(ctx context.Context, page int, search string) (Page, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(c.size))
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}

	var raw json.RawMessage
	if err := c.api.Call(ctx, api.Request{Method: http.MethodGet, Path: "/products/", Query: q}, &raw); err != nil {
		return Page{}, fmt.Errorf("list products: %w", err)
	}
	return decodePage(raw, page, c.size)
}

type listEnvelope struct {
	Products json.RawMessage `json:"products"`
	Results  json.RawMessage `json:"results"`
	Data     json.RawMessage `json:"data"`
	Total    int             `json:"total"`
	Pages    int             `json:"pages"`
	Page     int             `json:"page"`
}

// decodePage accepts a bare array or an object carrying the items under
// "products", "results" or "data". Missing totals are derived from the
// items.
func decodePage(raw json.RawMessage, page, size int) (Page, error) {
	p := Page{Page: page, Size: size}

	var items []Product
	if err := json.Unmarshal(raw, &items); err == nil {
		p.Items = items
	} else {
		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Page{}, fmt.Errorf("%w: %v", ErrBadFormat, err)
		}
		for _, candidate := range []json.RawMessage{env.Products, env.Results, env.Data} {
			if json.Unmarshal(candidate, &items) == nil && items != nil {
				p.Items = items
				break
			}
		}
		p.Total = env.Total
		p.Pages = env.Pages
		if env.Page > 0 {
			p.Page = env.Page
		}
	}

	if p.Items == nil {
		p.Items = []Product{}
	}
	if p.Total == 0 {
		p.Total = len(p.Items)
	}
	if p.Pages == 0 {
		p.Pages = TotalPages(p.Total, size)
	}
	return p, nil
}

// Search queries the dedicated search endpoint.
func (c *Catalog) Search(ctx context.Context, query string) ([]Product, error) {
	var raw json.RawMessage
	err := c.api.Call(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/products/search",
		Query:  url.Values{"q": {query}},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	p, err := decodePage(raw, 1, c.size)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

func (c *Catalog) Get(ctx context.Context, id api.ID) (Product, error) {
	if id == "" {
		return Product{}, ErrNoID
	}
	var p Product
	if err := c.api.Call(ctx, api.Request{Method: http.MethodGet, Path: productPath(id)}, &p); err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// Validate runs the product form checks on p.
func Validate(p Product) validate.Errors {
	return validate.Product(p.ArticleNumber, p.Product, strconv.FormatFloat(float64(p.Price), 'f', -1, 64))
}

// Create adds a product. An empty unit becomes DefaultUnit.
func (c *Catalog) Create(ctx context.Context, p Product) (Product, error) {
	if err := Validate(p).Err(); err != nil {
		return Product{}, err
	}
	p.ID = ""
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}

	var created Product
	if err := c.api.Call(ctx, api.Request{Method: http.MethodPost, Path: "/products/", Body: p}, &created); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	c.log.Info(ctx, "product created", "id", created.ID.String(), "article_number", created.ArticleNumber)
	return created, nil
}

func (c *Catalog) Update(ctx context.Context, id api.ID, p Product) (Product, error) {
	if id == "" {
		return Product{}, ErrNoID
	}
	if err := Validate(p).Err(); err != nil {
		return Product{}, err
	}
	p.ID = ""

	var updated Product
	if err := c.api.Call(ctx, api.Request{Method: http.MethodPut, Path: productPath(id), Body: p}, &updated); err != nil {
		return Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	return updated, nil
}

func (c *Catalog) Delete(ctx context.Context, id api.ID) error {
	if id == "" {
		return ErrNoID
	}
	if err := c.api.Call(ctx, api.Request{Method: http.MethodDelete, Path: productPath(id)}, nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	c.log.Info(ctx, "product deleted", "id", id.String())
	return nil
}

func productPath(id api.ID) string {
	return "/products/" + url.PathEscape(id.String())
}
