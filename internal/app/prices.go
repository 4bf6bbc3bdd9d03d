package app

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"salon_site/internal/domain"
)

type PriceService struct {
	src domain.PriceSheetSource
}

func NewPriceService(src domain.PriceSheetSource) *PriceService {
	return &PriceService{src: src}
}

// Catalog fetches the sheet and rebuilds the catalog. Nothing is cached.
func (s *PriceService) Catalog(ctx context.Context) (domain.PriceCatalog, error) {
	body, err := s.src.FetchCSV(ctx)
	if err != nil {
		return domain.PriceCatalog{}, fmt.Errorf("fetch price sheet: %w", err)
	}
	return ParseCatalog(body)
}

// ParseCatalog needs a header plus at least one more non-blank record,
// otherwise it returns domain.ErrNoData. The header is skipped unread.
func ParseCatalog(body string) (domain.PriceCatalog, error) {
	records := SplitRecords(body)
	if len(records) < 2 {
		return domain.PriceCatalog{}, domain.ErrNoData
	}

	items := make([]domain.PriceItem, 0, len(records)-1)
	for _, rec := range records[1:] {
		if item, ok := mapPriceRow(ParseCSVLine(rec)); ok {
			items = append(items, item)
		}
	}
	return buildCatalog(items), nil
}

func buildCatalog(items []domain.PriceItem) domain.PriceCatalog {
	grouped := make(map[string][]domain.PriceItem)
	for _, it := range items {
		grouped[it.Category] = append(grouped[it.Category], it)
	}
	for _, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })
	}

	flat := make([]domain.PriceItem, len(items))
	copy(flat, items)
	sortTurkish(flat)

	return domain.PriceCatalog{Categories: grouped, Items: flat}
}

// sortTurkish orders by category under Turkish collation, then SortOrder.
// A Collator is not safe for concurrent use, so each call builds its own.
func sortTurkish(items []domain.PriceItem) {
	col := collate.New(language.Turkish)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Category != b.Category {
			if c := col.CompareString(a.Category, b.Category); c != 0 {
				return c < 0
			}
		}
		return a.SortOrder < b.SortOrder
	})
}
