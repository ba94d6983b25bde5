package datatable

import (
	"github.com/goccy/go-json"
)

// WireTable is the cols/rows structure consumed by the chart renderer
type WireTable struct {
	Cols []WireColumn `json:"cols"`
	Rows []WireRow    `json:"rows"`
}

// WireColumn is the serialized form of a Column
type WireColumn struct {
	ID      string                 `json:"id"`
	Label   string                 `json:"label"`
	Type    string                 `json:"type"`
	Role    string                 `json:"role,omitempty"`
	Pattern string                 `json:"pattern,omitempty"`
	P       map[string]interface{} `json:"p,omitempty"`
}

// WireRow is the serialized form of a Row
type WireRow struct {
	C []WireCell `json:"c"`
}

// WireCell is the serialized form of a Cell.
// Date values in V are date constructor literals, not ISO strings.
type WireCell struct {
	V interface{}            `json:"v"`
	F string                 `json:"f,omitempty"`
	P map[string]interface{} `json:"p,omitempty"`
}

// Wire builds the renderer structure, applying column formatters to display strings
func (dt *DataTable) Wire() *WireTable {
	wt := &WireTable{
		Cols: make([]WireColumn, len(dt.columns)),
		Rows: make([]WireRow, len(dt.rows)),
	}

	for i, c := range dt.columns {
		wt.Cols[i] = WireColumn{
			ID:      c.id,
			Label:   c.label,
			Type:    c.typ.String(),
			Role:    c.role,
			Pattern: c.pattern,
			P:       copyProperties(c.properties),
		}
	}

	for r, row := range dt.rows {
		cells := make([]WireCell, len(row.cells))
		for i, c := range row.cells {
			cells[i] = WireCell{
				V: c.value,
				F: dt.displayString(i, c),
				P: copyProperties(c.properties),
			}
		}
		wt.Rows[r] = WireRow{C: cells}
	}

	return wt
}

func (dt *DataTable) displayString(column int, c Cell) string {
	f, ok := dt.formatters[column]
	if !ok || c.raw == nil {
		return c.formatted
	}
	if s, ok := f.Format(c.raw); ok {
		return s
	}
	return c.formatted
}

// MarshalJSON implements json.Marshaler using the wire structure
func (dt *DataTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.Wire())
}

// ToJSON returns the wire structure as a JSON string
func (dt *DataTable) ToJSON() (string, error) {
	data, err := json.Marshal(dt.Wire())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToJSONIndent returns the wire structure as indented JSON
func (dt *DataTable) ToJSONIndent(indent string) ([]byte, error) {
	return json.MarshalIndent(dt.Wire(), "", indent)
}
