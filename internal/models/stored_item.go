package models

// StoredItem is a keyed JSON blob. The front end kept its editable content
// (bonus courses, onboarding videos, popup contents, notifications, theme) and
// per-user markers as independent local-storage entries; this table gives those
// the same key/value contract with server-side persistence.
type StoredItem struct {
	BaseModel
	Key   string `json:"key" gorm:"uniqueIndex;not null;size:255"`
	Value string `json:"value" gorm:"type:text"`
}

// TableName keeps the table name plural to avoid clashing with SQL keywords.
func (StoredItem) TableName() string {
	return "stored_items"
}
