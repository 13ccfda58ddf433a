package model

import "time"

// Setting value types.
const (
	SettingString  = "string"
	SettingBoolean = "boolean"
	SettingNumber  = "number"
	SettingJSON    = "json"
)

// ValidSettingType reports whether s is a known setting value type.
func ValidSettingType(s string) bool {
	return s == SettingString || s == SettingBoolean || s == SettingNumber || s == SettingJSON
}

// Setting is one entry of the typed key-value site configuration store.
// Values are stored as text and interpreted according to Type.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Type      string    `json:"type" gorm:"size:16;not null;default:string"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// DefaultSettings are returned for keys that have never been written.
var DefaultSettings = map[string]Setting{
	"site_name":             {Key: "site_name", Type: SettingString, Value: "LinkTrove"},
	"site_description":      {Key: "site_description", Type: SettingString, Value: "Link in bio for small businesses"},
	"registration_open":     {Key: "registration_open", Type: SettingBoolean, Value: "true"},
	"articles_per_page":     {Key: "articles_per_page", Type: SettingNumber, Value: "10"},
	"featured_article_slot": {Key: "featured_article_slot", Type: SettingNumber, Value: "3"},
	"social_links":          {Key: "social_links", Type: SettingJSON, Value: "{}"},
}
