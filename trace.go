package styles

import (
	"encoding/json"
	"fmt"
)

// Trace captures how each probed chain level contributed to one resolved
// property.
type Trace struct {
	Property string       `json:"property,omitempty"`
	Layers   []Provenance `json:"layers"`
}

// Provenance details one probe against a chain level. Value holds the JSON
// encoding of the found value so a trace survives ToJSON and TraceFromJSON
// without losing its type; read it back with DecodeValue.
type Provenance struct {
	Level    string          `json:"level"`
	Name     string          `json:"name"`
	Depth    int             `json:"depth"`
	Property string          `json:"property,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Found    bool            `json:"found"`
}

// DecodeValue unmarshals the recorded value into out.
func (p Provenance) DecodeValue(out any) error {
	if len(p.Value) == 0 {
		return fmt.Errorf("styles: no value recorded at %s level %q", p.Level, p.Name)
	}
	return json.Unmarshal(p.Value, out)
}

// Supplier returns the provenance entry that defined the property.
func (t Trace) Supplier() (Provenance, bool) {
	for _, layer := range t.Layers {
		if layer.Found {
			return layer, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
