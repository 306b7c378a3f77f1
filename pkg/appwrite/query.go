package appwrite

import "encoding/json"

// The database API takes queries as JSON strings. These helpers mirror the
// Query builders of the hosted SDKs.

type queryJSON struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func marshalQuery(method, attribute string, values ...any) string {
	b, _ := json.Marshal(queryJSON{Method: method, Attribute: attribute, Values: values})
	return string(b)
}

func QueryEqual(attribute string, value any) string {
	return marshalQuery("equal", attribute, value)
}

func QueryOrderAsc(attribute string) string {
	return marshalQuery("orderAsc", attribute)
}

func QueryOrderDesc(attribute string) string {
	return marshalQuery("orderDesc", attribute)
}

func QueryLimit(n int) string {
	return marshalQuery("limit", "", n)
}
