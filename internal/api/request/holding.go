// Package request parses values taken from incoming HTTP requests.
package request

import (
	"net/url"
	"strings"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
)

// ParseUpdateMessage decodes the status message carried in the landing page
// path. Values that fail to unescape are returned as received.
func ParseUpdateMessage(raw string) string {
	msg, err := url.PathUnescape(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(msg)
}

// ParseFundSelection decodes a {fund} path value. An empty value or the
// "All funds" sentinel selects every fund and yields model.AllFunds.
func ParseFundSelection(raw string) string {
	fund := ParseUpdateMessage(raw)
	if model.IsAllFunds(fund) {
		return model.AllFunds
	}
	return fund
}
