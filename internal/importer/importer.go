package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a catalog export (a JSON object keyed by product id) and
// inserts/updates products.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

// productRecord mirrors one entry of the export. Prices are in currency units
// and converted to cents on import.
type productRecord struct {
	Name          string   `json:"name"`
	ImageURL      string   `json:"imageUrl"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OfferPrice    *float64 `json:"offerPrice"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   *int     `json:"reviewCount"`
}

// Run decodes the export and upserts every product. Entries are processed in
// key order so repeated runs touch rows in a stable sequence.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var records map[string]productRecord
	if err := json.NewDecoder(i.reader).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode export: %w", err)
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	imported := 0
	for _, k := range keys {
		if err := i.save(ctx, k, records[k]); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *JSONImporter) save(ctx context.Context, key string, rec productRecord) error {
	if rec.Name == "" || rec.Price <= 0 {
		return fmt.Errorf("invalid product record (missing name or price) for key %q", key)
	}

	p := domain.Product{
		Name:          rec.Name,
		ImageURL:      rec.ImageURL,
		Description:   rec.Description,
		Category:      rec.Category,
		PriceCents:    toCents(rec.Price),
		AverageRating: rec.AverageRating,
		ReviewCount:   rec.ReviewCount,
	}
	if rec.OfferPrice != nil {
		offer := toCents(*rec.OfferPrice)
		p.OfferPriceCents = &offer
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", rec.Name, err)
	}
	return nil
}

func toCents(units float64) int64 {
	return int64(math.Round(units * 100))
}
