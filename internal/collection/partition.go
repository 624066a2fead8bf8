package collection

import "github.com/Veraticus/binder/internal/model"

// Bucket is the filtered items of one category, in normalized order.
type Bucket struct {
	Category model.Category
	Items    []model.Item
}

// Partition splits items into one bucket per enabled category, keeping
// only items priced at or above thresholdCents. Items must already be in
// report order; bucket contents keep that order. The multicolor bucket
// collects every code outside the full single-color set, whether or not
// those single colors are enabled.
func Partition(items []model.Item, categories []model.Category, thresholdCents int64) []Bucket {
	buckets := make([]Bucket, 0, len(categories))
	for _, cat := range categories {
		bucket := Bucket{Category: cat, Items: []model.Item{}}
		for _, item := range items {
			if item.PriceCents >= thresholdCents && cat.Matches(item.ColorCode) {
				bucket.Items = append(bucket.Items, item)
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// BlueprintIDs returns the blueprint of every item across buckets, in
// bucket order, duplicates included.
func BlueprintIDs(buckets []Bucket) []model.BlueprintID {
	var ids []model.BlueprintID
	for _, b := range buckets {
		for _, item := range b.Items {
			ids = append(ids, item.BlueprintID)
		}
	}
	return ids
}
