package middleware

import (
	"strings"

	"github.com/mssola/user_agent"
)

// ClientInfo is the part of a User-Agent header worth keeping in access logs.
type ClientInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

func ParseUserAgent(uaString string) ClientInfo {
	if strings.TrimSpace(uaString) == "" {
		return ClientInfo{DeviceType: "unknown"}
	}

	ua := user_agent.New(uaString)
	browser, _ := ua.Browser()

	deviceType := "desktop"
	if ua.Bot() {
		deviceType = "bot"
	} else if ua.Mobile() {
		deviceType = "mobile"
	}

	return ClientInfo{
		Browser:    browser,
		OS:         ua.OSInfo().Name,
		DeviceType: deviceType,
	}
}

// String renders the info as a single space-free token, e.g.
// "Firefox/Linux/desktop".
func (c ClientInfo) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Browser, c.OS, c.DeviceType} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, strings.ReplaceAll(p, " ", "_"))
		}
	}
	return strings.Join(parts, "/")
}
