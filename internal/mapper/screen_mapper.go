package mapper

import (
	"BoxKeeper/internal/dto"
	"BoxKeeper/internal/models"
)

func ToScreenGetDTO(screen *models.Screen) *dto.ScreenGetDTO {
	return &dto.ScreenGetDTO{
		ScreenID:     screen.ID,
		ScreenNumber: screen.Number,
		PortNumber:   screen.Port,
		VlanNumber:   screen.VlanNumber,
		BoxID:        screen.BoxID,
	}
}

func ToScreenGetDTOs(screens []models.Screen) []dto.ScreenGetDTO {
	screenGetDTOs := make([]dto.ScreenGetDTO, 0, len(screens))
	for i := range screens {
		screenGetDTOs = append(screenGetDTOs, *ToScreenGetDTO(&screens[i]))
	}
	return screenGetDTOs
}

func ToBoxScreenDTO(screen *models.Screen) *dto.BoxScreenDTO {
	if screen == nil {
		return &dto.BoxScreenDTO{HasScreen: false}
	}
	return &dto.BoxScreenDTO{HasScreen: true, Screen: ToScreenGetDTO(screen)}
}

func ToUserScreenDTO(box *models.Box, screen *models.Screen) *dto.UserScreenDTO {
	if box == nil {
		return &dto.UserScreenDTO{}
	}
	userScreen := &dto.UserScreenDTO{
		HasBox:    true,
		UserID:    box.UserID,
		BoxID:     &box.ID,
		BoxNumber: &box.Number,
	}
	if screen == nil {
		return userScreen
	}
	userScreen.HasScreen = true
	userScreen.BoxPortNumber = &box.Port
	userScreen.BoxVlanNumber = box.VlanNumber
	userScreen.ScreenID = &screen.ID
	userScreen.ScreenNumber = screen.Number
	userScreen.ScreenPortNumber = &screen.Port
	userScreen.ScreenVlanNumber = screen.VlanNumber
	return userScreen
}
