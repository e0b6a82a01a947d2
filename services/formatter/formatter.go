package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"netboxbot/models"
	"netboxbot/utils"
)

const (
	NotAvailable         = "N/A"
	NothingFoundMessage  = "Nothing found."
	recordBullet         = "🔹"
	fieldLinePrefix      = `  \- `
	recordBlockSeparator = "\n\n"
)

// Formatter renders NetBox records as Telegram MarkdownV2 text
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatResults renders the records found for a search category.
// An empty result is the plain "nothing found" reply.
func (f *Formatter) FormatResults(label string, kind models.RecordKind, records []*models.Record) models.Reply {
	if len(records) == 0 {
		return models.PlainReply(NothingFoundMessage)
	}

	blocks := make([]string, 0, len(records))
	for _, record := range records {
		if kind == models.RecordKindDevice {
			blocks = append(blocks, f.FormatDevice(record))
		} else {
			blocks = append(blocks, f.FormatRecord(record))
		}
	}

	header := fmt.Sprintf("Found %s:", utils.EscapeMarkdown(label))
	return models.MarkdownReply(header + recordBlockSeparator + strings.Join(blocks, recordBlockSeparator))
}

// FormatRecord renders the name and description of any NetBox object
func (f *Formatter) FormatRecord(record *models.Record) string {
	lines := []string{
		titleLine(record),
		fieldLine("Description", valueOrNA(lookupPath(record, "description"))),
	}
	return strings.Join(lines, "\n")
}

// FormatDevice renders a dcim device: the known fields from deviceFieldRules
// first, then every other top-level field in record order.
func (f *Formatter) FormatDevice(record *models.Record) string {
	lines := []string{titleLine(record)}
	covered := map[string]bool{"name": true}

	for _, rule := range deviceFieldRules {
		covered[rule.path[0]] = true
		if line, ok := rule.render(record); ok {
			lines = append(lines, line)
		}
	}

	for pair := record.Oldest(); pair != nil; pair = pair.Next() {
		if covered[pair.Key] {
			continue
		}
		lines = append(lines, fieldLine(utils.Capitalize(pair.Key), displayValue(pair.Value)))
	}

	return strings.Join(lines, "\n")
}

func titleLine(record *models.Record) string {
	return fmt.Sprintf("%s *%s*", recordBullet, utils.EscapeMarkdown(valueOrNA(lookupPath(record, "name"))))
}

// fieldLine renders one indented "label: value" line; both parts are escaped here
func fieldLine(label, value string) string {
	return fmt.Sprintf("%s*%s*: %s", fieldLinePrefix, utils.EscapeMarkdown(label), utils.EscapeMarkdown(value))
}

// lookupPath resolves a dotted path through nested objects. JSON null counts as absent.
func lookupPath(record *models.Record, path ...string) mo.Option[any] {
	value, ok := record.Get(path[0])
	if !ok {
		return mo.None[any]()
	}
	for _, key := range path[1:] {
		nested, isMap := value.(map[string]any)
		if !isMap {
			return mo.None[any]()
		}
		if value, ok = nested[key]; !ok {
			return mo.None[any]()
		}
	}
	if value == nil {
		return mo.None[any]()
	}
	return mo.Some(value)
}

func valueOrNA(value mo.Option[any]) string {
	if !value.IsPresent() {
		return NotAvailable
	}
	return displayValue(value.MustGet())
}

// displayValue stringifies a decoded JSON value. Objects and lists are
// rendered as compact JSON rather than expanded.
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return NotAvailable
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	default:
		return fmt.Sprint(v)
	}
}
