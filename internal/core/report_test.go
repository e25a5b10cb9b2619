package core

import (
	"encoding/json"
	"testing"
)

func TestGroupCosts(t *testing.T) {
	entries := []Cost{
		{UserID: 123123, Description: "choco", Category: CategoryFood, Sum: Amount{Cents: 1200}, Year: 2025, Month: 2, Day: 12},
		{UserID: 123123, Description: "math book", Category: CategoryEducation, Sum: Amount{Cents: 8200}, Year: 2025, Month: 2, Day: 3},
		{UserID: 123123, Description: "milk", Category: CategoryFood, Sum: Amount{Cents: 800}, Year: 2025, Month: 2, Day: 17},
		{UserID: 123123, Description: "mystery", Category: Category("misc"), Sum: Amount{Cents: 99}, Year: 2025, Month: 2, Day: 5},
	}

	buckets := GroupCosts(entries)
	if len(buckets) != 5 {
		t.Fatalf("got %d buckets, want 5", len(buckets))
	}

	wantOrder := Categories()
	for i, b := range buckets {
		if b.Category != wantOrder[i] {
			t.Errorf("bucket %d category = %s, want %s", i, b.Category, wantOrder[i])
		}
		if b.Items == nil {
			t.Errorf("bucket %s has nil items, want empty slice", b.Category)
		}
	}

	food := buckets[0]
	if len(food.Items) != 2 {
		t.Fatalf("food bucket has %d items, want 2", len(food.Items))
	}
	// Input order is preserved inside a bucket.
	if food.Items[0].Description != "choco" || food.Items[1].Description != "milk" {
		t.Errorf("food items out of order: %+v", food.Items)
	}
	if food.Items[0].Day != 12 || food.Items[0].Sum.Cents != 1200 {
		t.Errorf("food item fields wrong: %+v", food.Items[0])
	}

	education := buckets[4]
	if len(education.Items) != 1 || education.Items[0].Description != "math book" {
		t.Errorf("education bucket wrong: %+v", education.Items)
	}

	// The unrecognized category is dropped, not bucketed anywhere.
	total := 0
	for _, b := range buckets {
		total += len(b.Items)
	}
	if total != 3 {
		t.Errorf("total bucketed items = %d, want 3", total)
	}
}

func TestGroupCostsEmpty(t *testing.T) {
	buckets := GroupCosts(nil)
	if len(buckets) != 5 {
		t.Fatalf("got %d buckets, want 5", len(buckets))
	}
	for _, b := range buckets {
		if len(b.Items) != 0 {
			t.Errorf("bucket %s not empty: %+v", b.Category, b.Items)
		}
	}
}

func TestCategoryBucketJSON(t *testing.T) {
	b := CategoryBucket{
		Category: CategoryHealth,
		Items:    []BucketItem{{Sum: Amount{Cents: 4550}, Description: "dentist", Day: 9}},
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"health":[{"sum":45.5,"description":"dentist","day":9}]}`
	if string(out) != want {
		t.Errorf("marshal = %s, want %s", out, want)
	}

	var back CategoryBucket
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Category != CategoryHealth || len(back.Items) != 1 || back.Items[0].Sum.Cents != 4550 {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestCategoryBucketJSONEmpty(t *testing.T) {
	out, err := json.Marshal(CategoryBucket{Category: CategorySports})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"sports":[]}` {
		t.Errorf("marshal = %s, want {\"sports\":[]}", out)
	}
}

func TestCategoryBucketUnmarshalRejectsMultipleKeys(t *testing.T) {
	var b CategoryBucket
	err := json.Unmarshal([]byte(`{"food":[],"health":[]}`), &b)
	if err == nil {
		t.Fatal("expected error for bucket with two categories")
	}
}

func TestReportJSONShape(t *testing.T) {
	r := Report{
		UserID: 123123,
		Year:   2025,
		Month:  2,
		Costs: GroupCosts([]Cost{
			{UserID: 123123, Description: "choco", Category: CategoryFood, Sum: Amount{Cents: 1200}, Day: 12},
		}),
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"userid":123123,"year":2025,"month":2,"costs":[` +
		`{"food":[{"sum":12,"description":"choco","day":12}]},` +
		`{"health":[]},{"housing":[]},{"sports":[]},{"education":[]}]}`
	if string(out) != want {
		t.Errorf("marshal mismatch:\n got %s\nwant %s", out, want)
	}
}
