package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/faktura/internal/client/api"
)

const (
	DefaultUnit = "pcs"
	// LowStock is the stock level at or below which a product is flagged.
	LowStock = 10
)

// Amount is a price in SEK. The backend serializes decimals either as JSON
// numbers or as strings ("129.50"); both decode.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(v)
	return nil
}

func (a Amount) String() string { return strconv.FormatFloat(float64(a), 'f', 2, 64) }

type Product struct {
	ID            api.ID `json:"id,omitempty"`
	ArticleNumber string `json:"article_number"`
	Product       string `json:"product"`
	InPrice       Amount `json:"in_price"`
	Price         Amount `json:"price"`
	Unit          string `json:"unit"`
	Stock         int    `json:"stock"`
	Description   string `json:"description"`
}

func (p Product) IsLowStock() bool { return p.Stock <= LowStock }
