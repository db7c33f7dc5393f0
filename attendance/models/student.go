package models

import "time"

type Student struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegNo      string `gorm:"size:50;uniqueIndex;not null" json:"reg_no"`
	Name       string `gorm:"size:200;not null" json:"name"`
	Department string `gorm:"size:100" json:"department,omitempty"`
	// FaceTemplate is the opaque biometric template owned by the identity
	// resolver. The session engine never interprets it.
	FaceTemplate string           `gorm:"type:text;not null" json:"-"`
	Sessions     []StudentSession `gorm:"foreignKey:RegNo;references:RegNo;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}
