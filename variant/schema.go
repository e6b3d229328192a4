package variant

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a descriptor file (see File).
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := r.Reflect(&File{})
	s.Title = "Variant descriptor file"
	s.Description = "Operation families whose variants are generated once per flag assignment."
	return s
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
