package models

type Screen struct {
	BaseModel
	Number     *string `gorm:"type:varchar(255)" json:"screen_number"`
	Port       string  `gorm:"type:varchar(255);not null" json:"port_number"`
	VlanNumber *string `gorm:"type:varchar(64)" json:"vlan_number"`
	// nil means the screen is free. A box drives at most one live screen.
	BoxID *uint `gorm:"index:idx_screens_box_id,unique,where:deleted_at IS NULL" json:"box_id"`
}

type ScreenPatch struct {
	Number     *string
	Port       *string
	VlanNumber *string
}

func (p ScreenPatch) IsEmpty() bool {
	return p.Number == nil && p.Port == nil && p.VlanNumber == nil
}

func (s *Screen) IsFree() bool {
	return s.BoxID == nil
}
