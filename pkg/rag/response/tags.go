package response

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseTags reads the model's tag output. It accepts {"tags": [...]} or a bare
// array, repairs near-JSON first, and returns an empty list for anything else.
func ParseTags(raw string) []string {
	raw = stripFences(raw)
	if raw == "" {
		return []string{}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return []string{}
		}
		if err := json.Unmarshal([]byte(repaired), &decoded); err != nil {
			return []string{}
		}
	}

	switch v := decoded.(type) {
	case map[string]interface{}:
		return stringItems(v["tags"])
	case []interface{}:
		return stringItems(v)
	default:
		return []string{}
	}
}

func stringItems(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		tags = append(tags, s)
	}
	return tags
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
