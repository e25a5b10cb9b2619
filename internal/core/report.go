package core

import (
	"encoding/json"
	"fmt"
)

// BucketItem is one cost entry as it appears inside a report bucket.
type BucketItem struct {
	Sum         Amount `json:"sum"`
	Description string `json:"description"`
	Day         int    `json:"day"`
}

// CategoryBucket holds the entries of a single category within a report.
// On the wire a bucket is a single-key object, e.g. {"food": [...]}.
type CategoryBucket struct {
	Category Category
	Items    []BucketItem
}

// Report is the aggregated view of one user's costs for one calendar
// month. Costs always contains the five buckets in fixed order; a report
// is never mutated after creation and a cached past-month report is only
// ever re-derivable from the cost entries that existed at caching time.
type Report struct {
	UserID int64            `json:"userid"`
	Year   int              `json:"year"`
	Month  int              `json:"month"`
	Costs  []CategoryBucket `json:"costs"`
}

func (b CategoryBucket) MarshalJSON() ([]byte, error) {
	items := b.Items
	if items == nil {
		items = []BucketItem{}
	}
	return json.Marshal(map[string][]BucketItem{string(b.Category): items})
}

func (b *CategoryBucket) UnmarshalJSON(data []byte) error {
	var m map[string][]BucketItem
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("category bucket must hold exactly one category, got %d", len(m))
	}
	for cat, items := range m {
		b.Category = Category(cat)
		b.Items = items
	}
	return nil
}

// GroupCosts partitions entries into the five fixed buckets, preserving
// the order entries arrive in. Entries with an unrecognized category are
// dropped: the report format has no bucket to hold them.
func GroupCosts(entries []Cost) []CategoryBucket {
	byCategory := make(map[Category][]BucketItem, len(Categories()))
	for _, e := range entries {
		if !e.Category.Valid() {
			continue
		}
		byCategory[e.Category] = append(byCategory[e.Category], BucketItem{
			Sum:         e.Sum,
			Description: e.Description,
			Day:         e.Day,
		})
	}

	buckets := make([]CategoryBucket, 0, len(Categories()))
	for _, cat := range Categories() {
		items := byCategory[cat]
		if items == nil {
			items = []BucketItem{}
		}
		buckets = append(buckets, CategoryBucket{Category: cat, Items: items})
	}
	return buckets
}
