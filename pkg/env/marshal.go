// Package env serializes collected configuration into .env file content.
package env

import (
	"fmt"
	"sort"
	"strings"
)

// Marshal renders vars as KEY=value lines in deterministic (sorted) order.
// Empty values are skipped.
func Marshal(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k, v := range vars {
		if k == "" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s=%s\n", k, vars[k]))
	}
	return b.String()
}
