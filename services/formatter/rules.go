package formatter

import "netboxbot/models"

// fieldRule renders one labelled line from a path into the record.
// Conditional rules are skipped unless every object on the way to the leaf
// is present and non-empty; unconditional rules fall back to N/A.
type fieldRule struct {
	label       string
	path        []string
	conditional bool
}

var deviceFieldRules = []fieldRule{
	{label: "ID", path: []string{"id"}},
	{label: "Status", path: []string{"status", "label"}},
	{label: "Serial", path: []string{"serial"}},
	{label: "Asset Tag", path: []string{"asset_tag"}},
	{label: "Device Type", path: []string{"device_type", "model"}, conditional: true},
	{label: "Manufacturer", path: []string{"device_type", "manufacturer", "name"}, conditional: true},
	{label: "Site", path: []string{"site", "name"}, conditional: true},
	{label: "Rack", path: []string{"rack", "name"}, conditional: true},
	{label: "Location", path: []string{"location", "name"}, conditional: true},
	{label: "Primary IP", path: []string{"primary_ip", "address"}, conditional: true},
}

func (r fieldRule) render(record *models.Record) (string, bool) {
	if r.conditional && !parentsPresent(record, r.path) {
		return "", false
	}
	return fieldLine(r.label, valueOrNA(lookupPath(record, r.path...))), true
}

func parentsPresent(record *models.Record, path []string) bool {
	for i := 1; i < len(path); i++ {
		parent := lookupPath(record, path[:i]...)
		if !parent.IsPresent() {
			return false
		}
		nested, ok := parent.MustGet().(map[string]any)
		if !ok || len(nested) == 0 {
			return false
		}
	}
	return true
}
