package domain

import "time"

const (
	DefaultUTMSource = "ooh"
	DefaultUTMMedium = "outdoor"
)

// Link is a trackable campaign endpoint reachable at /r/{identifier}.
type Link struct {
	ID              int64     `gorm:"primaryKey;column:id" json:"id"`
	Identifier      string    `gorm:"column:identifier;size:100;uniqueIndex;not null" json:"identifier"`
	DestinationURL  string    `gorm:"column:destination_url;type:text;not null" json:"destination_url"`
	PontoDOOH       string    `gorm:"column:ponto_dooh;size:200;not null;index" json:"ponto_dooh"`
	Campanha        string    `gorm:"column:campanha;size:200;not null;index" json:"campanha"`
	QRCodeID        *string   `gorm:"column:qr_code_id;size:100" json:"qr_code_id,omitempty"`
	PecaCriativa    *string   `gorm:"column:peca_criativa;size:200" json:"peca_criativa,omitempty"`
	LocalEspecifico *string   `gorm:"column:local_especifico;size:200" json:"local_especifico,omitempty"`
	TipoMidia       *string   `gorm:"column:tipo_midia;size:100" json:"tipo_midia,omitempty"`
	UTMSource       *string   `gorm:"column:utm_source;size:200" json:"utm_source,omitempty"`
	UTMMedium       *string   `gorm:"column:utm_medium;size:200" json:"utm_medium,omitempty"`
	UTMCampaign     *string   `gorm:"column:utm_campaign;size:200" json:"utm_campaign,omitempty"`
	UTMContent      *string   `gorm:"column:utm_content;size:200" json:"utm_content,omitempty"`
	UTMTerm         *string   `gorm:"column:utm_term;size:200" json:"utm_term,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Live count, never stored.
	TotalClicks int64 `gorm:"-" json:"total_clicks"`

	// Relationships
	Clicks []Click `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName возвращает название таблицы для GORM
func (Link) TableName() string {
	return "links"
}

// QueryParam is a single ordered query-string pair.
type QueryParam struct {
	Key   string
	Value string
}

// UTMParameters returns the configured UTM pairs in canonical order
// (source, medium, campaign, content, term). Unset or empty fields are skipped.
func (l *Link) UTMParameters() []QueryParam {
	candidates := []struct {
		key   string
		value *string
	}{
		{"utm_source", l.UTMSource},
		{"utm_medium", l.UTMMedium},
		{"utm_campaign", l.UTMCampaign},
		{"utm_content", l.UTMContent},
		{"utm_term", l.UTMTerm},
	}

	params := make([]QueryParam, 0, len(candidates))
	for _, c := range candidates {
		if c.value != nil && *c.value != "" {
			params = append(params, QueryParam{Key: c.key, Value: *c.value})
		}
	}
	return params
}

// ApplyUTMDefaults fills unset UTM fields from the campaign metadata.
// utm_term has no default.
func (l *Link) ApplyUTMDefaults() {
	if isBlank(l.UTMSource) {
		l.UTMSource = strPtr(DefaultUTMSource)
	}
	if isBlank(l.UTMMedium) {
		if !isBlank(l.TipoMidia) {
			l.UTMMedium = strPtr(*l.TipoMidia)
		} else {
			l.UTMMedium = strPtr(DefaultUTMMedium)
		}
	}
	if isBlank(l.UTMCampaign) && l.Campanha != "" {
		l.UTMCampaign = strPtr(l.Campanha)
	}
	if isBlank(l.UTMContent) {
		switch {
		case !isBlank(l.QRCodeID):
			l.UTMContent = strPtr(*l.QRCodeID)
		case !isBlank(l.PecaCriativa):
			l.UTMContent = strPtr(*l.PecaCriativa)
		}
	}
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

func strPtr(s string) *string {
	return &s
}
