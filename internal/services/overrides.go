package services

import "strings"

// legacyOverridePrefix is stripped from override keys; older billing setups
// named fields "config_<env label>"
const legacyOverridePrefix = "config_"

// reservedOverrideKeys are identifier and metadata fields that must never
// be forwarded as game configuration
var reservedOverrideKeys = map[string]struct{}{
	GameConfigCustomField: {},
	ServerIDCustomField:   {},
	"GameCP Server Name":  {},
	"Node ID":             {},
	"Location":            {},
}

// BuildConfigOverrides merges custom fields and configurable options into
// one flat override map. Options are applied after custom fields and win
// conflicts. The panel matches keys by environment variable label, so
// admins can use friendly names.
func BuildConfigOverrides(customFields, configOptions map[string]string) map[string]string {
	overrides := map[string]string{}

	addOverrides(overrides, customFields)
	addOverrides(overrides, configOptions)

	return overrides
}

func addOverrides(overrides map[string]string, source map[string]string) {
	for key, value := range source {
		if _, reserved := reservedOverrideKeys[key]; reserved {
			continue
		}
		if value == "" {
			continue
		}
		key = strings.TrimPrefix(key, legacyOverridePrefix)
		overrides[key] = value
	}
}
