package query

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Key derives the cache key for a request. The key is a pure function of
// the document and the canonicalized variables: object keys are deeply
// sorted before serializing, so two logically identical variable maps
// always produce the same key regardless of construction order.
func Key(document string, variables map[string]interface{}) string {
	var b strings.Builder
	b.WriteString(document)
	b.WriteByte('\x00')
	writeCanonical(&b, variables)
	return b.String()
}

func writeCanonical(b *strings.Builder, value interface{}) {
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			encoded, _ := json.Marshal(k)
			b.Write(encoded)
			b.WriteByte(':')
			writeCanonical(b, v[k])
		}
		b.WriteByte('}')
	case []interface{}:
		b.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			// Unserializable variables cannot round-trip to the remote
			// side either; keep the key deterministic per type+value.
			fmt.Fprintf(b, "%T(%v)", v, v)
			return
		}
		b.Write(encoded)
	}
}
