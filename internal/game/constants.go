package game

import (
	"github.com/mitchelldurbincs/abalone/internal/config"
)

// DefaultRenderOptions reads the text board settings from the loaded config
func DefaultRenderOptions() RenderOptions {
	dev := config.Get().Development
	return RenderOptions{
		Color:           dev.ColorOutput,
		ShowCoordinates: dev.ShowCoordinates,
	}
}
