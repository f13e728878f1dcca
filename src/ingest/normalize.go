package ingest

import (
	"fmt"
	"strings"
	"time"

	"assetserver/src/models"
	"assetserver/src/utils"
)

const remarkSeparator = "; "

// Record is one sheet row mapped onto canonical asset fields.
type Record struct {
	Kind         models.AssetKind
	AssetType    string
	Outlet       string
	Serial       string
	DatePurchase *time.Time
	Remark       string
	Values       map[Field]string
}

func (r *Record) Value(f Field) string {
	return r.Values[f]
}

// Skip explains why a row produced no record.
type Skip struct {
	Field  Field
	Key    string
	Reason string
}

func (s *Skip) Error() string {
	return s.Reason
}

// Normalize maps a single row of a sheet with the given columns. Rows missing a
// required field are skipped. Unparseable dates leave the date unset.
func Normalize(d *Dialect, row Row, columns []string) (*Record, *Skip) {
	return normalize(d, d.bind(columns), row, columns)
}

func normalize(d *Dialect, b *binding, row Row, columns []string) (*Record, *Skip) {
	values := make(map[Field]string, len(b.fields))
	for field, column := range b.fields {
		if v := strings.TrimSpace(row[column]); v != "" {
			values[field] = v
		}
	}

	for _, field := range d.Required {
		if values[field] == "" {
			return nil, &Skip{
				Field:  field,
				Key:    values[FieldSerial],
				Reason: fmt.Sprintf("missing %s", field),
			}
		}
	}

	if d.Item != nil {
		if v := strings.TrimSpace(row[b.itemColumn]); b.itemColumn != "" && v != "" {
			values[FieldItem] = fmt.Sprintf(d.Item.Format, v)
		} else {
			values[FieldItem] = d.Item.Fallback
		}
	}

	for field, def := range d.Defaults {
		if values[field] == "" {
			values[field] = def
		}
	}

	record := &Record{
		Kind:      d.Kind,
		AssetType: d.AssetType,
		Outlet:    values[FieldOutlet],
		Serial:    values[FieldSerial],
		Remark:    remark(b, row, columns, values[FieldRemark]),
		Values:    values,
	}
	delete(values, FieldRemark)

	for _, column := range b.dates {
		if t, ok := utils.ParseDayFirst(row[column]); ok {
			record.DatePurchase = &t
			break
		}
	}
	return record, nil
}

// remark joins the prefix columns, the remark column and every unmapped column
// as "column=value". Blank values are left out.
func remark(b *binding, row Row, columns []string, base string) string {
	var parts []string
	for _, column := range b.remarkPrefix {
		if v := strings.TrimSpace(row[column]); v != "" {
			parts = append(parts, v)
		}
	}
	if base != "" {
		parts = append(parts, base)
	}
	for _, column := range columns {
		if b.recognized[column] {
			continue
		}
		if v := strings.TrimSpace(row[column]); v != "" {
			parts = append(parts, column+"="+v)
		}
	}
	return strings.Join(parts, remarkSeparator)
}

// Normalizer normalizes the rows of one sheet in order, carrying forward-fill
// values from row to row.
type Normalizer struct {
	dialect *Dialect
	columns []string
	binding *binding
	carry   map[Field]string
}

func NewNormalizer(d *Dialect, columns []string) *Normalizer {
	return &Normalizer{
		dialect: d,
		columns: columns,
		binding: d.bind(columns),
		carry:   make(map[Field]string, len(d.ForwardFill)),
	}
}

func (n *Normalizer) Next(row Row) (*Record, *Skip) {
	filled, copied := row, false
	for _, field := range n.dialect.ForwardFill {
		column, ok := n.binding.fields[field]
		if !ok {
			continue
		}
		if v := strings.TrimSpace(row[column]); v != "" {
			n.carry[field] = v
			continue
		}
		prev, ok := n.carry[field]
		if !ok {
			continue
		}
		if !copied {
			filled, copied = copyRow(row), true
		}
		filled[column] = prev
	}
	return normalize(n.dialect, n.binding, filled, n.columns)
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
