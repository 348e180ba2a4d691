package dto

type BoxGetDTO struct {
	BoxID      uint    `json:"box_id"`
	BoxNumber  string  `json:"box_number"`
	PortNumber string  `json:"port_number"`
	VlanNumber *string `json:"vlan_number,omitempty"`
	UserID     *int64  `json:"user_id"`
}

type UserBoxDTO struct {
	HasBox bool `json:"has_box"`
	*BoxGetDTO
}

type MessageDTO struct {
	Message string `json:"message"`
}
