package search

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"netboxbot/appctx"
	"netboxbot/clients"
	"netboxbot/core"
	"netboxbot/core/log"
	"netboxbot/models"
	"netboxbot/services/formatter"
	"netboxbot/usecases"
)

const (
	unknownCommandMessage = "Unknown command. Available commands:"
	helpHeader            = "Available commands:"
	welcomeHeader         = "Hi! I search NetBox for you.\nUse the commands:"
)

// SearchUseCase routes chat commands to NetBox searches
type SearchUseCase struct {
	netboxClient clients.NetBoxClient
	formatter    *formatter.Formatter
}

var _ usecases.SearchUseCaseInterface = (*SearchUseCase)(nil)

// NewSearchUseCase creates a new instance of SearchUseCase
func NewSearchUseCase(netboxClient clients.NetBoxClient, resultFormatter *formatter.Formatter) *SearchUseCase {
	return &SearchUseCase{
		netboxClient: netboxClient,
		formatter:    resultFormatter,
	}
}

// HandleMessage produces the reply for one inbound chat message. It always
// returns a reply; lookup failures and panics become a failure notice.
func (s *SearchUseCase) HandleMessage(ctx context.Context, text string) models.Reply {
	trigger, query := ParseCommand(text)

	switch trigger {
	case models.StartCommand:
		return WelcomeReply()
	case models.HelpCommand:
		return models.PlainReply(helpHeader + "\n\n" + commandListing())
	}

	maybeCmd := models.FindSearchCommand(trigger)
	if !maybeCmd.IsPresent() {
		log.Debug("🤷 Unknown command", "request_id", requestID(ctx), "trigger", trigger)
		return UnknownCommandReply()
	}
	cmd := maybeCmd.MustGet()

	if query == "" {
		return MissingQueryReply(cmd)
	}

	return s.Search(ctx, models.SearchQuery{Command: cmd, Text: query})
}

// Search performs the NetBox lookup for a parsed query and formats the result
func (s *SearchUseCase) Search(ctx context.Context, query models.SearchQuery) (reply models.Reply) {
	cmd := query.Command
	defer func() {
		if r := recover(); r != nil {
			log.Error("❌ Panic while searching",
				"request_id", requestID(ctx), "category", cmd.Label, "panic", fmt.Sprint(r))
			reply = FailureReply(cmd)
		}
	}()

	log.Info("🔍 Searching NetBox",
		"request_id", requestID(ctx), "category", cmd.Label, "endpoint", cmd.Endpoint, "query", query.Text)

	records, err := s.netboxClient.Search(ctx, cmd.Endpoint, query.Text)
	if err != nil {
		kind := "unexpected"
		if lookupErr, ok := core.IsLookupError(err); ok {
			kind = string(lookupErr.Kind)
		}
		log.Error("❌ Failed to search "+cmd.Label, "request_id", requestID(ctx), "kind", kind, "error", err)
		return FailureReply(cmd)
	}

	log.Info("📦 NetBox search completed",
		"request_id", requestID(ctx), "category", cmd.Label, "count", len(records))
	return s.formatter.FormatResults(cmd.Label, cmd.Kind, records)
}

// ParseCommand splits message text into the command trigger and the trimmed
// query that follows the first whitespace. A "/cmd@BotName" trigger is
// reduced to "/cmd".
func ParseCommand(text string) (trigger, query string) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)

	trigger, query = text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		trigger, query = text[:i], text[i:]
	}

	if strings.HasPrefix(trigger, "/") {
		if at := strings.Index(trigger, "@"); at > 0 {
			trigger = trigger[:at]
		}
	}

	return trigger, strings.TrimSpace(query)
}

func WelcomeReply() models.Reply {
	var b strings.Builder
	b.WriteString(welcomeHeader)
	for _, cmd := range models.SearchCommands {
		fmt.Fprintf(&b, "\n%s <query> - search %s", cmd.Trigger, cmd.Label)
	}
	return models.PlainReply(b.String())
}

func UnknownCommandReply() models.Reply {
	return models.PlainReply(unknownCommandMessage + "\n\n" + commandListing())
}

func MissingQueryReply(cmd models.SearchCommand) models.Reply {
	return models.PlainReply(fmt.Sprintf("Please specify a query to search for %s.", cmd.Label))
}

func FailureReply(cmd models.SearchCommand) models.Reply {
	return models.PlainReply(fmt.Sprintf("An error occurred while searching for %s.", cmd.Label))
}

func commandListing() string {
	lines := make([]string, 0, len(models.SearchCommands))
	for _, cmd := range models.SearchCommands {
		lines = append(lines, fmt.Sprintf("%s - Search %s", cmd.Trigger, cmd.Label))
	}
	return strings.Join(lines, "\n")
}

func requestID(ctx context.Context) string {
	id, _ := appctx.GetRequestID(ctx)
	return id
}
