package entity

import (
	"gorm.io/gorm"
)

type IssueType struct {
	gorm.Model
	TypeName string   `json:"typeName"`
	Reports  []Report `json:"-"`
}
