package useragent

import (
	"fmt"
	"os"
	"strings"

	mssola "github.com/mssola/useragent"
	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Device types
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

const unknown = "unknown"

// Parser classifies User-Agent strings. uap-go is the primary classifier;
// mssola/useragent is consulted for whatever uap-go leaves unresolved.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// DeviceInfo represents parsed device information
type DeviceInfo struct {
	DeviceType string // mobile, tablet, desktop, unknown
	Browser    string // "Chrome 120.0.0", "Mobile Safari 17.1", ...
	OS         string // "iOS 17.1", "Windows 10", ...
	Raw        string // Original User-Agent string
}

// Unknown is the result for empty or unparseable input.
func Unknown(raw string) *DeviceInfo {
	return &DeviceInfo{
		DeviceType: DeviceUnknown,
		Browser:    unknown,
		OS:         unknown,
		Raw:        raw,
	}
}

// NewParser creates a parser from a uap-core regexes.yaml file
func NewParser(regexFilePath string, log *zap.Logger) (*Parser, error) {
	regexBytes, err := os.ReadFile(regexFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file %s: %w", regexFilePath, err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized", zap.String("regexes_file", regexFilePath))
	return &Parser{parser: parser, log: log}, nil
}

// NewDefaultParser creates a parser from the definitions bundled with uap-go
func NewDefaultParser(log *zap.Logger) *Parser {
	return &Parser{parser: uaparser.NewFromSaved(), log: log}
}

// ParseUserAgent parses a User-Agent string. It never panics; any failure
// yields the all-unknown result.
func (p *Parser) ParseUserAgent(userAgent string) (info *DeviceInfo) {
	if strings.TrimSpace(userAgent) == "" {
		return Unknown(userAgent)
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("User-Agent parsing failed", zap.String("user_agent", userAgent), zap.Any("panic", r))
			info = Unknown(userAgent)
		}
	}()

	client := p.parser.Parse(userAgent)
	fallback := mssola.New(userAgent)

	info = &DeviceInfo{
		DeviceType: determineDeviceType(client, fallback, userAgent),
		Browser:    formatBrowser(client, fallback),
		OS:         formatOS(client, fallback),
		Raw:        userAgent,
	}

	p.log.Debug("parsed User-Agent",
		zap.String("device_type", info.DeviceType),
		zap.String("browser", info.Browser),
		zap.String("os", info.OS),
	)

	return info
}

func determineDeviceType(client *uaparser.Client, fallback *mssola.UserAgent, userAgent string) string {
	deviceFamily := familyOf(client.Device)
	osFamily := ""
	if client.Os != nil {
		osFamily = client.Os.Family
	}

	if deviceFamily != "" {
		if isTablet(deviceFamily) {
			return DeviceTablet
		}
		if isMobile(deviceFamily) {
			return DeviceMobile
		}
	}

	if isMobileOS(osFamily) {
		if isTabletOS(osFamily, userAgent) {
			return DeviceTablet
		}
		return DeviceMobile
	}

	if isDesktopOS(osFamily) {
		return DeviceDesktop
	}

	// uap-go had no opinion; ask the heuristic parser
	if fallback.Bot() {
		return DeviceUnknown
	}
	if fallback.Mobile() {
		if containsFold(userAgent, "tablet") || containsFold(userAgent, "ipad") {
			return DeviceTablet
		}
		return DeviceMobile
	}
	if isDesktopOS(fallback.OSInfo().Name) {
		return DeviceDesktop
	}

	return DeviceUnknown
}

func familyOf(d *uaparser.Device) string {
	if d == nil || d.Family == "Other" {
		return ""
	}
	return d.Family
}

func formatBrowser(client *uaparser.Client, fallback *mssola.UserAgent) string {
	if client.UserAgent != nil && client.UserAgent.Family != "" && client.UserAgent.Family != "Other" {
		return joinVersion(client.UserAgent.Family, client.UserAgent.ToVersionString())
	}
	name, version := fallback.Browser()
	if name == "" {
		return unknown
	}
	return joinVersion(name, version)
}

func formatOS(client *uaparser.Client, fallback *mssola.UserAgent) string {
	if client.Os != nil && client.Os.Family != "" && client.Os.Family != "Other" {
		return joinVersion(client.Os.Family, client.Os.ToVersionString())
	}
	osInfo := fallback.OSInfo()
	if osInfo.Name == "" {
		return unknown
	}
	return joinVersion(osInfo.Name, osInfo.Version)
}

// joinVersion renders "family version", dropping the version when empty.
func joinVersion(family, version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return family
	}
	return family + " " + version
}

func isMobile(deviceFamily string) bool {
	return containsAny(deviceFamily, "iPhone", "Android", "BlackBerry", "Windows Phone", "Mobile", "Phone")
}

func isTablet(deviceFamily string) bool {
	return containsAny(deviceFamily, "iPad", "Tablet", "Kindle", "Surface")
}

func isMobileOS(osFamily string) bool {
	return containsAny(osFamily, "iOS", "Android", "Windows Phone", "BlackBerry OS", "Firefox OS", "Sailfish OS")
}

// isTabletOS distinguishes tablets running a mobile OS
func isTabletOS(osFamily, userAgent string) bool {
	if containsFold(osFamily, "iOS") {
		return containsFold(userAgent, "iPad")
	}
	// Android tablets typically don't have "Mobile" in User-Agent
	if containsFold(osFamily, "Android") {
		return !containsFold(userAgent, "Mobile")
	}
	return false
}

func isDesktopOS(osFamily string) bool {
	return containsAny(osFamily, "Windows", "Mac OS X", "macOS", "Linux", "Ubuntu", "Chrome OS", "FreeBSD", "OpenBSD", "NetBSD")
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if containsFold(s, n) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	if s == "" || substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
