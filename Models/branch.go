package Models

import "gorm.io/gorm"

type Branch struct {
	gorm.Model
	Name string `json:"name" gorm:"unique"`
}

func GetBranches() ([]Branch, error) {
	var branches []Branch
	if err := DB.Model(&Branch{}).Order("id asc").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
