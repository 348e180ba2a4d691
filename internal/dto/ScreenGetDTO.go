package dto

type ScreenGetDTO struct {
	ScreenID     uint    `json:"screen_id"`
	ScreenNumber *string `json:"screen_number"`
	PortNumber   string  `json:"port_number"`
	VlanNumber   *string `json:"vlan_number"`
	BoxID        *uint   `json:"box_id"`
}

type BoxScreenDTO struct {
	HasScreen bool          `json:"has_screen"`
	Screen    *ScreenGetDTO `json:"screen,omitempty"`
}

// UserScreenDTO flattens a user's box and its screen. Box fields are omitted
// when the user holds no box, screen fields when the box drives no screen.
type UserScreenDTO struct {
	HasBox           bool    `json:"has_box"`
	HasScreen        bool    `json:"has_screen"`
	UserID           *int64  `json:"user_id,omitempty"`
	BoxID            *uint   `json:"box_id,omitempty"`
	BoxNumber        *string `json:"box_number,omitempty"`
	BoxPortNumber    *string `json:"box_port_number,omitempty"`
	BoxVlanNumber    *string `json:"box_vlan_number,omitempty"`
	ScreenID         *uint   `json:"screen_id,omitempty"`
	ScreenNumber     *string `json:"screen_number,omitempty"`
	ScreenPortNumber *string `json:"screen_port_number,omitempty"`
	ScreenVlanNumber *string `json:"screen_vlan_number,omitempty"`
}

type SnapshotDTO struct {
	Boxes   []BoxGetDTO    `json:"boxes"`
	Screens []ScreenGetDTO `json:"screens"`
}
