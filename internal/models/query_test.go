package models

import "testing"

func TestSearchQueryValidate(t *testing.T) {
	q := &SearchQuery{Query: "отчет"}
	if err := q.Validate(); err != nil {
		t.Fatal(err)
	}
	if q.Limit != 10 {
		t.Errorf("default limit = %d, want 10", q.Limit)
	}

	q = &SearchQuery{Query: "отчет", Limit: 500, Offset: -3}
	if err := q.Validate(); err != nil {
		t.Fatal(err)
	}
	if q.Limit != 100 {
		t.Errorf("limit should cap at 100, got %d", q.Limit)
	}
	if q.Offset != 0 {
		t.Errorf("negative offset should reset to 0, got %d", q.Offset)
	}

	q = &SearchQuery{}
	if err := q.Validate(); err == nil {
		t.Error("empty query should fail validation")
	}

	q = &SearchQuery{Query: "   "}
	if err := q.Validate(); err == nil {
		t.Error("whitespace-only query should fail validation")
	}
}
