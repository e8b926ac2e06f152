package models

import (
	"time"

	"gorm.io/datatypes"
)

// Comment is keyed by when it was made and a sequence within that instant
type Comment struct {
	CreatedOn time.Time `gorm:"primaryKey;autoIncrement:false"`
	SeqNum    int16     `gorm:"primaryKey;autoIncrement:false"`
	Comment1  *string   `gorm:"column:comment1;size:200"`
}

// TimeGroup ids are generated by the database
type TimeGroup struct {
	ID         datatypes.UUID `gorm:"type:uuid;primaryKey;default:(gen_random_uuid())"`
	Comment    *string        `gorm:"size:100"`
	TimeLimits []TimeLimit    `gorm:"foreignKey:TimeGroupID;references:ID"`
}

// TimeLimit bounds a duration
type TimeLimit struct {
	ID          int32          `gorm:"primaryKey"`
	MaxTime     datatypes.Time `gorm:"not null"`
	MinTime     *datatypes.Time
	ZeroTime    *datatypes.Time
	TimeGroupID *datatypes.UUID `gorm:"type:uuid"`
	TimeGroup   *TimeGroup      `gorm:"foreignKey:TimeGroupID;references:ID;belongsTo"`
}
