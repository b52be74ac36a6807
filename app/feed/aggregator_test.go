package feed

import (
	"reflect"
	"testing"
	"time"
)

func testItem(link string, published time.Time) Item {
	return Item{
		ID:        generateID(link),
		Title:     "Item " + link,
		Link:      link,
		Source:    "Test Feed",
		Published: published,
	}
}

func TestAggregatorRecencyWindow(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)
	cutoff := runStart.Add(-36 * time.Hour)

	items := []Item{
		testItem("https://example.com/now", runStart),
		testItem("https://example.com/boundary", cutoff),
		testItem("https://example.com/stale", cutoff.Add(-time.Second)),
		testItem("https://example.com/recent", cutoff.Add(time.Hour)),
	}

	result := aggregator.Run(items, runStart)

	if len(result) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(result))
	}

	for _, item := range result {
		if item.Link == "https://example.com/stale" {
			t.Error("Item older than the window should be dropped")
		}
	}

	// An item published exactly at the cutoff stays
	found := false
	for _, item := range result {
		if item.Link == "https://example.com/boundary" {
			found = true
		}
	}
	if !found {
		t.Error("Item published exactly at the cutoff should be kept")
	}
}

func TestAggregatorDedupLastWins(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)

	// The first occurrence is the newer one, so survival is decided by
	// processing order, not by freshness
	first := testItem("https://example.com/dup", runStart.Add(-time.Hour))
	first.Title = "First version"
	other := testItem("https://example.com/other", runStart.Add(-3*time.Hour))
	last := testItem("https://example.com/dup", runStart.Add(-2*time.Hour))
	last.Title = "Last version"

	result := aggregator.Run([]Item{first, other, last}, runStart)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}

	if result[0].Title != "Last version" {
		t.Errorf("Expected the later occurrence to survive, got: %s", result[0].Title)
	}
	if !result[0].Published.Equal(runStart.Add(-2 * time.Hour)) {
		t.Errorf("Expected the later occurrence's timestamp, got: %v", result[0].Published)
	}
	if result[1].Link != "https://example.com/other" {
		t.Errorf("Expected other item second, got: %s", result[1].Link)
	}
}

func TestAggregatorDedupKeepsFirstSeenPosition(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)
	published := runStart.Add(-time.Hour)

	first := testItem("https://example.com/dup", published)
	first.Title = "First version"
	other := testItem("https://example.com/other", published)
	last := testItem("https://example.com/dup", published)
	last.Title = "Last version"

	result := aggregator.Run([]Item{first, other, last}, runStart)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}

	// Equal timestamps, so the stable sort exposes the dedup order: the
	// survivor sits where its link first appeared
	if result[0].Title != "Last version" {
		t.Errorf("Expected 'Last version' at first-seen position, got: %s", result[0].Title)
	}
	if result[1].Link != "https://example.com/other" {
		t.Errorf("Expected other item second, got: %s", result[1].Link)
	}
}

func TestAggregatorSortsNewestFirst(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)

	items := []Item{
		testItem("https://example.com/old", runStart.Add(-3*time.Hour)),
		testItem("https://example.com/newest", runStart.Add(-time.Minute)),
		testItem("https://example.com/middle", runStart.Add(-time.Hour)),
	}

	result := aggregator.Run(items, runStart)

	if len(result) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(result))
	}

	expected := []string{
		"https://example.com/newest",
		"https://example.com/middle",
		"https://example.com/old",
	}
	for i, link := range expected {
		if result[i].Link != link {
			t.Errorf("Expected %s at position %d, got: %s", link, i, result[i].Link)
		}
	}
}

func TestAggregatorSortIsStable(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)
	published := runStart.Add(-time.Hour)

	items := []Item{
		testItem("https://example.com/first", published),
		testItem("https://example.com/second", published),
		testItem("https://example.com/third", published),
	}

	result := aggregator.Run(items, runStart)

	// Equal timestamps keep their input order
	expected := []string{
		"https://example.com/first",
		"https://example.com/second",
		"https://example.com/third",
	}
	for i, link := range expected {
		if result[i].Link != link {
			t.Errorf("Expected %s at position %d, got: %s", link, i, result[i].Link)
		}
	}
}

func TestAggregatorCapsItemCount(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 2)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)

	items := []Item{
		testItem("https://example.com/1", runStart.Add(-4*time.Hour)),
		testItem("https://example.com/2", runStart.Add(-time.Hour)),
		testItem("https://example.com/3", runStart.Add(-2*time.Hour)),
		testItem("https://example.com/4", runStart.Add(-3*time.Hour)),
	}

	result := aggregator.Run(items, runStart)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}

	// The cap keeps the newest items
	if result[0].Link != "https://example.com/2" {
		t.Errorf("Expected newest item first, got: %s", result[0].Link)
	}
	if result[1].Link != "https://example.com/3" {
		t.Errorf("Expected second newest item, got: %s", result[1].Link)
	}
}

func TestAggregatorIdempotent(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)
	runStart := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)

	items := []Item{
		testItem("https://example.com/dup", runStart.Add(-time.Hour)),
		testItem("https://example.com/other", runStart.Add(-2*time.Hour)),
		testItem("https://example.com/dup", runStart.Add(-time.Hour)),
		testItem("https://example.com/stale", runStart.Add(-90*time.Hour)),
	}

	once := aggregator.Run(items, runStart)
	twice := aggregator.Run(once, runStart)

	if !reflect.DeepEqual(once, twice) {
		t.Error("Expected aggregation to be idempotent")
	}
}

func TestAggregatorEmptyInput(t *testing.T) {
	aggregator := NewAggregator(36*time.Hour, 100)

	result := aggregator.Run(nil, time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC))

	if len(result) != 0 {
		t.Errorf("Expected no items, got %d", len(result))
	}
}
