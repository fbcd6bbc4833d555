package invidx

import "testing"

func TestDocument_MultiValuedFields(t *testing.T) {
	doc := NewDocument()
	doc.AddField("field1", "aaa")
	doc.AddField("field1", "bbb")
	doc.AddField("field2", "ccc")

	if doc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", doc.Len())
	}

	want := map[FieldValue]bool{
		{Field: "field1", Value: "aaa"}: false,
		{Field: "field1", Value: "bbb"}: false,
		{Field: "field2", Value: "ccc"}: false,
	}
	n := 0
	for fv := range doc.Fields() {
		if _, ok := want[fv]; !ok {
			t.Errorf("unexpected field value: %+v", fv)
			continue
		}
		want[fv] = true
		n++
	}
	if n != 3 {
		t.Errorf("visited %d field values, want 3", n)
	}
	for fv, seen := range want {
		if !seen {
			t.Errorf("never visited %+v", fv)
		}
	}
}

func TestDocument_ValuesKeepInsertionOrderWithinField(t *testing.T) {
	doc := NewDocument()
	doc.AddField("field1", "aaa")
	doc.AddField("field1", "bbb")
	doc.AddField("field1", "ccc")

	var values []string
	for fv := range doc.Fields() {
		if fv.Field == "field1" {
			values = append(values, fv.Value)
		}
	}
	want := []string{"aaa", "bbb", "ccc"}
	if len(values) != len(want) {
		t.Fatalf("got %v, want %v", values, want)
	}
	for i, v := range want {
		if values[i] != v {
			t.Errorf("value %d = %q, want %q", i, values[i], v)
		}
	}
}

func TestDocument_ClearAndIsEmpty(t *testing.T) {
	doc := NewDocument()
	if !doc.IsEmpty() {
		t.Fatal("new document should be empty")
	}

	doc.AddField("field1", "aaa")
	if doc.IsEmpty() {
		t.Fatal("document with a field should not be empty")
	}

	doc.Clear()
	if !doc.IsEmpty() || doc.Len() != 0 {
		t.Fatal("Clear() did not reset the document")
	}
}
