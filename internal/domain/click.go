package domain

import "time"

// Device types produced by the User-Agent classifier.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// Click представляет один переход по ссылке (скан QR-кода)
type Click struct {
	ID              int64     `gorm:"primaryKey;column:id" json:"id"`
	LinkID          int64     `gorm:"column:link_id;not null;index" json:"link_id"`
	IPAddress       *string   `gorm:"column:ip_address;size:45;index" json:"ip_address"`
	UserAgent       *string   `gorm:"column:user_agent;type:text" json:"user_agent"`
	Referrer        *string   `gorm:"column:referrer;type:text" json:"referrer"`
	DeviceType      *string   `gorm:"column:device_type;size:20" json:"device_type"` // 'mobile', 'tablet', 'desktop', 'unknown'
	Browser         *string   `gorm:"column:browser;size:100" json:"browser"`
	OperatingSystem *string   `gorm:"column:operating_system;size:100" json:"operating_system"`
	Country         *string   `gorm:"column:country;size:100" json:"country"`
	City            *string   `gorm:"column:city;size:100" json:"city"`
	State           *string   `gorm:"column:state;size:100" json:"state"`
	ISP             *string   `gorm:"column:isp;size:200" json:"isp"`
	Timezone        *string   `gorm:"column:timezone;size:64" json:"timezone"`
	Language        *string   `gorm:"column:language;size:35" json:"language"`
	ClickedAt       time.Time `gorm:"column:clicked_at;not null;index" json:"clicked_at"`

	// Relationships
	ConversionEvents []ConversionEvent `gorm:"foreignKey:ClickID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName возвращает название таблицы для GORM
func (Click) TableName() string {
	return "clicks"
}

// GetDeviceType returns the device type or "unknown" when it was not derived.
func (c *Click) GetDeviceType() string {
	if c.DeviceType != nil && *c.DeviceType != "" {
		return *c.DeviceType
	}
	return DeviceUnknown
}

// GetCountry returns the country or "unknown" when geolocation was skipped or failed.
func (c *Click) GetCountry() string {
	if c.Country != nil && *c.Country != "" {
		return *c.Country
	}
	return "unknown"
}
