package gridquery

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// testAddress and testCustomer give the test schema two levels of nesting.
type testAddress struct {
	City string
}

type testCustomer struct {
	Name    string
	Address *testAddress
}

// testItem is a domain type covering every field kind.
type testItem struct {
	ID         string
	Name       string
	Priority   int
	Score      *int
	Amount     float64
	Count      uint8
	Active     bool
	Flag       *bool
	Placed     time.Time
	Closed     *time.Time
	Price      decimal.Decimal
	Ref        uuid.UUID
	Note       *string
	IDCustomer int
	Customer   *testCustomer
}

// newTestSchema creates a Schema with a standard set of fields for testing.
func newTestSchema(opts ...Option) *Schema[*testItem] {
	addresses := NewSchema[*testAddress]()
	StringField(addresses, "city", func(a *testAddress) string { return a.City })

	customers := NewSchema[*testCustomer]()
	StringField(customers, "name", func(c *testCustomer) string { return c.Name })
	Nested(customers, "address", addresses, func(c *testCustomer) (*testAddress, bool) {
		return c.Address, c.Address != nil
	})

	s := NewSchema[*testItem](opts...)
	StringField(s, "id", func(item *testItem) string { return item.ID })
	StringField(s, "name", func(item *testItem) string { return item.Name })
	IntField(s, "priority", func(item *testItem) int { return item.Priority })
	NullableIntField(s, "score", func(item *testItem) *int { return item.Score })
	FloatField(s, "amount", func(item *testItem) float64 { return item.Amount })
	UintField(s, "count", func(item *testItem) uint8 { return item.Count })
	BoolField(s, "active", func(item *testItem) bool { return item.Active })
	NullableBoolField(s, "flag", func(item *testItem) *bool { return item.Flag })
	TimeField(s, "placed", func(item *testItem) time.Time { return item.Placed })
	NullableTimeField(s, "closed", func(item *testItem) *time.Time { return item.Closed })
	DecimalField(s, "price", func(item *testItem) decimal.Decimal { return item.Price })
	UUIDField(s, "ref", func(item *testItem) uuid.UUID { return item.Ref })
	NullableStringField(s, "note", func(item *testItem) *string { return item.Note })
	IntField(s, "idCustomer", func(item *testItem) int { return item.IDCustomer })
	Nested(s, "customer", customers, func(item *testItem) (*testCustomer, bool) {
		return item.Customer, item.Customer != nil
	})
	return s
}

func ptr[V any](v V) *V { return &v }

// ids extracts item IDs for order assertions.
func ids(items []*testItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestResolve_DirectField(t *testing.T) {
	s := newTestSchema()
	f, err := s.Resolve("priority")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Path != "priority" || f.Kind != KindInt || f.Nullable {
		t.Errorf("field = {%s %s %v}, want {priority int false}", f.Path, f.Kind, f.Nullable)
	}
	v, ok := f.Value(&testItem{Priority: 7})
	if !ok || v != int64(7) {
		t.Errorf("Value = %v, %v; want 7, true", v, ok)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	s := newTestSchema()
	f, err := s.Resolve("PRIORITY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Path != "priority" {
		t.Errorf("Path = %q, want canonical %q", f.Path, "priority")
	}
}

func TestResolve_Nested(t *testing.T) {
	s := newTestSchema()
	item := &testItem{Customer: &testCustomer{Name: "Acme", Address: &testAddress{City: "Delft"}}}

	tests := []struct {
		path     string
		wantPath string
		want     string
	}{
		{"customer.name", "customer.name", "Acme"},
		{"Customer.Name", "customer.name", "Acme"},
		{"customer.address.city", "customer.address.city", "Delft"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := s.Resolve(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", f.Path, tt.wantPath)
			}
			if !f.Nullable {
				t.Error("nested fields should be nullable")
			}
			if got := f.Text(item); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_NestedAbsentIntermediate(t *testing.T) {
	s := newTestSchema()
	f, err := s.Resolve("customer.address.city")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range []*testItem{
		{},
		{Customer: &testCustomer{Name: "Acme"}},
	} {
		if v, ok := f.Value(item); ok {
			t.Errorf("Value = %v, want null for absent intermediate", v)
		}
	}
}

func TestResolve_Unresolvable(t *testing.T) {
	s := newTestSchema()
	for _, path := range []string{"", "missing", "customer", "customer.missing", "name.first", "customer.address.zip", "customer..name"} {
		t.Run(path, func(t *testing.T) {
			_, err := s.Resolve(path)
			if err == nil {
				t.Fatal("expected error")
			}
			var qe *Error
			if !errors.As(err, &qe) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if qe.Code != ErrFieldNotFound {
				t.Errorf("Code = %q, want %q", qe.Code, ErrFieldNotFound)
			}
		})
	}
}

func TestFields_ListsNestedPaths(t *testing.T) {
	s := newTestSchema()
	got := s.Fields()
	want := []string{
		"id", "name", "priority", "score", "amount", "count", "active", "flag",
		"placed", "closed", "price", "ref", "note", "idCustomer",
		"customer.name", "customer.address.city",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_CyclicNesting(t *testing.T) {
	type node struct {
		Name   string
		Parent *node
	}
	s := NewSchema[*node]()
	StringField(s, "name", func(n *node) string { return n.Name })
	Nested(s, "parent", s, func(n *node) (*node, bool) { return n.Parent, n.Parent != nil })

	if diff := cmp.Diff([]string{"name"}, s.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}

	f, err := s.Resolve("parent.parent.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := &node{Name: "c", Parent: &node{Name: "b", Parent: &node{Name: "a"}}}
	if got := f.Text(n); got != "a" {
		t.Errorf("Text = %q, want a", got)
	}
}

func TestFieldRegistrationOverwrite(t *testing.T) {
	s := NewSchema[*testItem]()
	StringField(s, "name", func(item *testItem) string { return item.Name })
	StringField(s, "name", func(item *testItem) string { return "overwritten-" + item.Name })

	f, err := s.Resolve("name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.Text(&testItem{Name: "x"}); got != "overwritten-x" {
		t.Errorf("Text = %q, want overwritten-x", got)
	}
	if len(s.fieldOrder) != 1 {
		t.Errorf("fieldOrder length = %d, want 1 (no duplicates on overwrite)", len(s.fieldOrder))
	}
}

func TestRegister_RejectsDottedName(t *testing.T) {
	defer func() {
		r := recover()
		qe, ok := r.(*Error)
		if !ok || qe.Code != ErrValidation {
			t.Errorf("recover() = %v, want *Error with code %s", r, ErrValidation)
		}
	}()
	s := NewSchema[*testItem]()
	StringField(s, "customer.name", func(item *testItem) string { return "" })
}

func TestField_CompareNullsFirst(t *testing.T) {
	s := newTestSchema()
	f, err := s.Resolve("score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	null := &testItem{}
	low := &testItem{Score: ptr(1)}
	high := &testItem{Score: ptr(9)}

	if f.Compare(null, low) >= 0 {
		t.Error("expected null < 1")
	}
	if f.Compare(low, high) >= 0 {
		t.Error("expected 1 < 9")
	}
	if f.Compare(null, &testItem{}) != 0 {
		t.Error("expected null == null")
	}
}
