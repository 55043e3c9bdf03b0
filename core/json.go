package core

import gojson "github.com/goccy/go-json"

// jsonMarshal and jsonUnmarshal centralize the JSON library choice
// (goccy/go-json, §4.3) so nothing else in the package imports
// encoding/json directly.
func jsonMarshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func jsonUnmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}
