package mapper

import (
	"BoxKeeper/internal/dto"
	"BoxKeeper/internal/models"
)

func ToBoxGetDTO(box *models.Box) *dto.BoxGetDTO {
	return &dto.BoxGetDTO{
		BoxID:      box.ID,
		BoxNumber:  box.Number,
		PortNumber: box.Port,
		VlanNumber: box.VlanNumber,
		UserID:     box.UserID,
	}
}

// ToBoxGetDTOs never returns nil, so an empty inventory encodes as [].
func ToBoxGetDTOs(boxes []models.Box) []dto.BoxGetDTO {
	boxGetDTOs := make([]dto.BoxGetDTO, 0, len(boxes))
	for i := range boxes {
		boxGetDTOs = append(boxGetDTOs, *ToBoxGetDTO(&boxes[i]))
	}
	return boxGetDTOs
}

func ToUserBoxDTO(box *models.Box) *dto.UserBoxDTO {
	if box == nil {
		return &dto.UserBoxDTO{HasBox: false}
	}
	return &dto.UserBoxDTO{HasBox: true, BoxGetDTO: ToBoxGetDTO(box)}
}
