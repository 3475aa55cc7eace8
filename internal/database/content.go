package database

import (
	"fmt"

	"membership-api/internal/models"

	"gorm.io/gorm"
)

// The content store is a keyed JSON blob table. It carries the editable site
// content (bonus courses, onboarding videos, popup contents, notifications,
// theme defaults) plus small per-user markers.

// GetItem returns the stored value for key. Returns gorm.ErrRecordNotFound
// when the key is absent.
func GetItem(key string) (string, error) {
	var item models.StoredItem
	if err := DB.Where("key = ?", key).First(&item).Error; err != nil {
		return "", err
	}
	return item.Value, nil
}

// SetItem writes value under key, overwriting any previous value.
func SetItem(key, value string) error {
	var item models.StoredItem
	err := DB.Where("key = ?", key).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return DB.Create(&models.StoredItem{Key: key, Value: value}).Error
		}
		return err
	}
	item.Value = value
	return DB.Save(&item).Error
}

// DeleteItem removes key. Deleting a missing key is not an error.
func DeleteItem(key string) error {
	return DB.Where("key = ?", key).Delete(&models.StoredItem{}).Error
}

// HasItem reports whether key exists.
func HasItem(key string) (bool, error) {
	var count int64
	if err := DB.Model(&models.StoredItem{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CompletionKey is the marker written once a study plan has been generated for
// an email. Its presence keeps FirstAccess false across account re-creation.
func CompletionKey(email string) string {
	return fmt.Sprintf("user_completed_%s", email)
}

// defaultContent is written on first boot so the admin panel has something to
// edit before anyone saves.
var defaultContent = map[string]string{
	"theme":         `{"primary_color":"#8B5CF6","dark_mode":false}`,
	"notifications": `[]`,
}

// SeedDefaultContent inserts the default content keys that do not exist yet.
func SeedDefaultContent() error {
	for key, value := range defaultContent {
		exists, err := HasItem(key)
		if err != nil {
			return err
		}
		if !exists {
			if err := SetItem(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}
