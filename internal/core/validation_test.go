package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		header      []string
		wantErr     bool
		wantMissing string
	}{
		{
			name:   "exact header",
			header: Columns,
		},
		{
			name:   "mixed case and extra column",
			header: []string{"Order_ID", "ORDER_DATE", "customer_id", "product", "category", "unit_price", "quantity", "country", "notes"},
		},
		{
			name:   "reordered",
			header: []string{"country", "quantity", "unit_price", "category", "product", "customer_id", "order_date", "order_id"},
		},
		{
			name:        "missing country",
			header:      Columns[:7],
			wantErr:     true,
			wantMissing: "country",
		},
		{
			name:        "empty",
			header:      nil,
			wantErr:     true,
			wantMissing: "order_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ValidateHeaders(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateHeaders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), tt.wantMissing) {
					t.Errorf("ValidateHeaders() error = %q, want it to name %q", err, tt.wantMissing)
				}
				return
			}
			if len(idx) < len(Columns) {
				t.Errorf("ValidateHeaders() index has %d columns, want at least %d", len(idx), len(Columns))
			}
		})
	}
}

func TestBuildOrderLine(t *testing.T) {
	idx := MakeHeaderIndex(Columns)

	row := []string{"O-1", "2024-01-01", "C1", "Widget", "Tools", "9.99", "2", "US"}
	got, err := BuildOrderLine(row, idx, 2)
	if err != nil {
		t.Fatalf("BuildOrderLine() unexpected error: %v", err)
	}

	want := OrderLine{
		OrderID:    "O-1",
		OrderDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		CustomerID: "C1",
		Product:    "Widget",
		Category:   "Tools",
		UnitPrice:  9.99,
		Quantity:   2,
		Country:    "US",
	}
	if got != want {
		t.Errorf("BuildOrderLine() = %+v, want %+v", got, want)
	}
	if rev := got.Revenue(); rev != 9.99*2 {
		t.Errorf("Revenue() = %v, want %v", rev, 9.99*2)
	}
}

func TestBuildOrderLine_EmptyCountryAllowed(t *testing.T) {
	idx := MakeHeaderIndex(Columns)
	row := []string{"O-1", "2024-01-01", "C1", "Widget", "Tools", "0", "1", ""}

	got, err := BuildOrderLine(row, idx, 2)
	if err != nil {
		t.Fatalf("BuildOrderLine() unexpected error: %v", err)
	}
	if got.Country != "" || got.UnitPrice != 0 {
		t.Errorf("BuildOrderLine() = %+v, want empty country and zero price", got)
	}
}

func TestBuildOrderLine_Malformed(t *testing.T) {
	idx := MakeHeaderIndex(Columns)
	base := []string{"O-1", "2024-01-01", "C1", "Widget", "Tools", "9.99", "2", "US"}

	with := func(col string, v string) []string {
		row := append([]string(nil), base...)
		row[idx[col]] = v
		return row
	}

	tests := []struct {
		name      string
		row       []string
		wantField string
		wantErr   error
	}{
		{name: "unparseable quantity", row: with(ColQuantity, "two"), wantField: ColQuantity, wantErr: errNotInteger},
		{name: "zero quantity", row: with(ColQuantity, "0"), wantField: ColQuantity},
		{name: "negative quantity", row: with(ColQuantity, "-3"), wantField: ColQuantity},
		{name: "unparseable price", row: with(ColUnitPrice, "cheap"), wantField: ColUnitPrice, wantErr: errNotNumber},
		{name: "negative price", row: with(ColUnitPrice, "-1.00"), wantField: ColUnitPrice},
		{name: "empty price", row: with(ColUnitPrice, ""), wantField: ColUnitPrice, wantErr: errEmpty},
		{name: "bad date", row: with(ColOrderDate, "2024-13-01"), wantField: ColOrderDate, wantErr: errNotDate},
		{name: "empty order id", row: with(ColOrderID, " "), wantField: ColOrderID, wantErr: errEmpty},
		{name: "empty customer", row: with(ColCustomerID, ""), wantField: ColCustomerID, wantErr: errEmpty},
		{name: "empty category", row: with(ColCategory, ""), wantField: ColCategory, wantErr: errEmpty},
		{name: "short row", row: base[:6], wantField: ColQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildOrderLine(tt.row, idx, 7)

			var mre *MalformedRowError
			if !errors.As(err, &mre) {
				t.Fatalf("BuildOrderLine() error = %v, want *MalformedRowError", err)
			}
			if mre.Line != 7 {
				t.Errorf("Line = %d, want 7", mre.Line)
			}
			if mre.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", mre.Field, tt.wantField)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsEmptyRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{name: "nil row", row: nil, want: true},
		{name: "all empty", row: []string{"", "", ""}, want: true},
		{name: "whitespace only", row: []string{" ", "\t"}, want: true},
		{name: "one value", row: []string{"", "x", ""}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmptyRow(tt.row); got != tt.want {
				t.Errorf("isEmptyRow(%q) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}
