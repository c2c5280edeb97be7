package Models

import "gorm.io/gorm"

// Marker is a persisted key/value row used for cross-restart guards,
// e.g. the last successful backup date.
type Marker struct {
	gorm.Model
	Key   string `json:"key" gorm:"unique"`
	Value string `json:"value"`
}

func GetMarker(key string) (string, error) {
	var marker Marker
	err := DB.Where("key = ?", key).First(&marker).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return marker.Value, nil
}

func SetMarker(key, value string) error {
	var marker Marker
	err := DB.Where("key = ?", key).First(&marker).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		marker = Marker{Key: key, Value: value}
		return DB.Create(&marker).Error
	}
	marker.Value = value
	return DB.Save(&marker).Error
}
