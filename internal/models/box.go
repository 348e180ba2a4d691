package models

type Box struct {
	BaseModel
	Number     string  `gorm:"type:varchar(255);not null" json:"box_number"`
	Port       string  `gorm:"type:varchar(255);not null" json:"port_number"`
	VlanNumber *string `gorm:"type:varchar(64)" json:"vlan_number,omitempty"`
	// nil means the box is free. Unique among live rows.
	UserID *int64 `gorm:"index:idx_boxes_user_id,unique,where:deleted_at IS NULL" json:"user_id"`
}

// BoxPatch carries the attribute changes of an update. Nil fields are left as they are.
type BoxPatch struct {
	Number     *string
	Port       *string
	VlanNumber *string
}

func (p BoxPatch) IsEmpty() bool {
	return p.Number == nil && p.Port == nil && p.VlanNumber == nil
}

func (b *Box) IsFree() bool {
	return b.UserID == nil
}
