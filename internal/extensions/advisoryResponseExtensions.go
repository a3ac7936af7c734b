package extensions

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/RobsonDevCode/growmate-probe/internal/clients/models"
)

// FlattenJson renders a loosely typed field as one display line. Strings are
// returned as is, lists are joined and localized objects use English.
func FlattenJson(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}

	return flatten(value)
}

func flatten(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]interface{}:
		if en, ok := v["en"]; ok {
			return flatten(en)
		}
		encoded, _ := json.Marshal(v)
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FlattenJsonList keeps list items separate, a scalar becomes one item.
func FlattenJsonList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := FlattenJson(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := FlattenJson(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// DecodeAdvisory reports whether body is an advisory envelope at all, raw
// bodies from proxies or html error pages are left to the caller.
func DecodeAdvisory(body []byte) (models.AdvisoryResponse, bool) {
	var response models.AdvisoryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.AdvisoryResponse{}, false
	}
	if response.Status == "" && response.Error == "" && response.Meta == nil {
		return models.AdvisoryResponse{}, false
	}

	return response, true
}

func FindShoppingItem(advisory *models.Advisory, nameFragment string) (models.ShoppingItem, bool) {
	if advisory == nil {
		return models.ShoppingItem{}, false
	}

	for _, item := range advisory.ShoppingList {
		if strings.Contains(item.Name.En, nameFragment) {
			return item, true
		}
	}
	return models.ShoppingItem{}, false
}

// NormalizeLabel folds display labels and api enums onto one form, so
// "Clay Loam" and "clay_loam" compare equal.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
}
