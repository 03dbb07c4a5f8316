package core

// validation.go turns raw CSV records into OrderLines.
//
// Validation happens at two levels:
//  1. Header validation: the file must carry every expected column
//  2. Row coercion: each cell is parsed, then the assembled OrderLine is
//     checked against its struct tags
//
// The first failure aborts; errors carry the line, field and raw value.

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// lineValidator returns the shared validator. Struct metadata is cached by
// the validator, so one instance serves every row.
func lineValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// fieldColumns maps OrderLine field names to their column names for errors.
var fieldColumns = map[string]string{
	"OrderID":    ColOrderID,
	"OrderDate":  ColOrderDate,
	"CustomerID": ColCustomerID,
	"Product":    ColProduct,
	"Category":   ColCategory,
	"UnitPrice":  ColUnitPrice,
	"Quantity":   ColQuantity,
	"Country":    ColCountry,
}

// ValidateHeaders checks that the header row carries every expected column.
// Extra columns are ignored. Returns the index for locating cells.
func ValidateHeaders(header []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)
	var missing []string

	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// cell returns the cleaned value of a column, or "" when the row is short.
func cell(row []string, idx HeaderIndex, col string) string {
	pos, ok := idx[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// BuildOrderLine coerces one data row. line is used only for errors.
func BuildOrderLine(row []string, idx HeaderIndex, line int) (OrderLine, error) {
	malformed := func(col string, err error) error {
		return &MalformedRowError{Line: line, Field: col, Value: cell(row, idx, col), Err: err}
	}

	for _, col := range Columns {
		if pos := idx[col]; pos >= len(row) {
			return OrderLine{}, &MalformedRowError{
				Line:  line,
				Field: col,
				Err:   fmt.Errorf("row has %d columns, %s is column %d", len(row), col, pos+1),
			}
		}
	}

	date, err := ParseOrderDate(cell(row, idx, ColOrderDate))
	if err != nil {
		return OrderLine{}, malformed(ColOrderDate, err)
	}
	price, err := ParsePrice(cell(row, idx, ColUnitPrice))
	if err != nil {
		return OrderLine{}, malformed(ColUnitPrice, err)
	}
	qty, err := ParseQuantity(cell(row, idx, ColQuantity))
	if err != nil {
		return OrderLine{}, malformed(ColQuantity, err)
	}

	ol := OrderLine{
		OrderID:    cell(row, idx, ColOrderID),
		OrderDate:  date,
		CustomerID: cell(row, idx, ColCustomerID),
		Product:    cell(row, idx, ColProduct),
		Category:   cell(row, idx, ColCategory),
		UnitPrice:  price,
		Quantity:   qty,
		Country:    cell(row, idx, ColCountry),
	}

	if err := lineValidator().Struct(ol); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return OrderLine{}, malformed(fieldColumns[fe.StructField()], ruleError(fe))
		}
		return OrderLine{}, &MalformedRowError{Line: line, Err: err}
	}

	return ol, nil
}

// ruleError describes a failed validation tag in plain words.
func ruleError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errEmpty
	case "gte":
		return fmt.Errorf("must be >= %s", fe.Param())
	case "gt":
		return fmt.Errorf("must be > %s", fe.Param())
	default:
		return fmt.Errorf("failed %q check", fe.Tag())
	}
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
