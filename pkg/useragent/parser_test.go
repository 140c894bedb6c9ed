package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseUserAgent(t *testing.T) {
	p := NewDefaultParser(zap.NewNop())

	tests := []struct {
		name       string
		ua         string
		deviceType string
		browser    string
		os         string
	}{
		{
			name:       "iphone safari",
			ua:         "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			deviceType: "mobile",
			browser:    "Mobile Safari",
			os:         "iOS",
		},
		{
			name:       "ipad",
			ua:         "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			deviceType: "tablet",
			browser:    "Mobile Safari",
			os:         "iOS",
		},
		{
			name:       "windows chrome",
			ua:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			deviceType: "desktop",
			browser:    "Chrome",
			os:         "Windows",
		},
		{
			name:       "android phone",
			ua:         "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36",
			deviceType: "mobile",
			browser:    "Chrome Mobile",
			os:         "Android",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := p.ParseUserAgent(tt.ua)
			require.NotNil(t, info)
			assert.Equal(t, tt.deviceType, info.DeviceType)
			assert.Contains(t, info.Browser, tt.browser)
			assert.Contains(t, info.OS, tt.os)
			assert.Equal(t, tt.ua, info.Raw)
		})
	}
}

func TestParseUserAgent_Empty(t *testing.T) {
	p := NewDefaultParser(zap.NewNop())

	info := p.ParseUserAgent("")
	assert.Equal(t, "unknown", info.DeviceType)
	assert.Equal(t, "unknown", info.Browser)
	assert.Equal(t, "unknown", info.OS)
}

func TestJoinVersion(t *testing.T) {
	assert.Equal(t, "Chrome 120.0.0", joinVersion("Chrome", "120.0.0"))
	assert.Equal(t, "Chrome", joinVersion("Chrome", ""))
	assert.Equal(t, "Chrome", joinVersion("Chrome", "  "))
}

func TestNewParser_MissingFile(t *testing.T) {
	_, err := NewParser("/nonexistent/regexes.yaml", zap.NewNop())
	assert.Error(t, err)
}
