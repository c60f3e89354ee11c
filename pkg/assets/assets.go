package assets

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var IconBytes []byte

var Icon = &fyne.StaticResource{
	StaticName:    "icon.svg",
	StaticContent: IconBytes,
}
