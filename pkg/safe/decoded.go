package safe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DataDecodedToText renders the dataDecoded field of a transaction.
//
// Calls wrapping other calls (MultiSend, or executeTransaction from another
// Safe) are rendered as the method name followed by one " - " line per nested
// call. Plain calls render as "method: value1,value2".
func DataDecodedToText(dataDecoded map[string]any) string {
	if len(dataDecoded) == 0 {
		return ""
	}

	method, _ := dataDecoded["method"].(string)
	parameters, _ := dataDecoded["parameters"].([]any)

	var text strings.Builder
	for _, p := range parameters {
		parameter, _ := p.(map[string]any)
		decodedValue, ok := parameter["decodedValue"]
		if !ok {
			continue
		}

		values, _ := decodedValue.([]any)
		nested := make([]string, 0, len(values))
		for _, v := range values {
			entry, _ := v.(map[string]any)
			decodedData, _ := entry["decodedData"].(map[string]any)
			nested = append(nested, DataDecodedToText(decodedData))
		}
		text.WriteString(method + ":\n - " + strings.Join(nested, "\n - ") + "\n")
	}
	if text.Len() > 0 {
		return strings.TrimSpace(text.String())
	}

	values := make([]string, 0, len(parameters))
	for _, p := range parameters {
		parameter, _ := p.(map[string]any)
		values = append(values, formatValue(parameter["value"]))
	}
	return method + ": " + strings.Join(values, ",")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
