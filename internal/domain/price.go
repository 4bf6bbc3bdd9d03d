package domain

// UnorderedSortOrder is assigned when the sheet row has no usable order.
const UnorderedSortOrder = 9999

// PriceItem is one service row of the price sheet. Price is kept as the
// display string from the sheet.
type PriceItem struct {
	Category    string `json:"category"`
	ServiceName string `json:"serviceName"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
	Note        string `json:"note"`
	SortOrder   int    `json:"sortOrder"`
}

// PriceCatalog is rebuilt on every request.
type PriceCatalog struct {
	Categories map[string][]PriceItem `json:"categories"`
	Items      []PriceItem            `json:"items"`
}
