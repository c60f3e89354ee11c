package settings

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lusingander/colorpicker"
	"github.com/roffe/empol/pkg/colors"
	"github.com/roffe/empol/pkg/widgets"
	"github.com/skratchdot/open-golang/open"
)

func (sw *Widget) colorsTab() *container.TabItem {
	form := widget.NewForm()
	form.Append("Palette", sw.colorBlindMode)
	for _, f := range fields {
		form.Append(f.String(), container.NewHBox(
			sw.swatches[f],
			sw.hex[f],
			widget.NewButtonWithIcon("Pick", theme.ColorPaletteIcon(), func() {
				sw.showPicker(f)
			}),
		))
	}
	return container.NewTabItemWithIcon("Colors", theme.ColorPaletteIcon(), container.NewVBox(
		form,
		widget.NewLabel("Colour changes apply from the next part."),
	))
}

func (sw *Widget) outputTab() *container.TabItem {
	return container.NewTabItemWithIcon("Output", theme.FolderIcon(), container.NewVBox(
		widget.NewLabel("Frames and screenshots are saved to"),
		container.NewBorder(nil, nil, nil,
			container.NewHBox(
				widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), func() {
					widgets.SelectFolder(sw.SetFrameDir, "Select frame folder")
				}),
				widget.NewButtonWithIcon("Open", theme.ComputerIcon(), func() {
					if err := open.Run(sw.FrameDir()); err != nil {
						log.Println(err)
					}
				}),
			),
			sw.frameDir,
		),
	))
}

func (sw *Widget) newColorBlindMode() *widget.Select {
	return widget.NewSelect(colors.SupportedColorBlindModes[:], func(s string) {
		if sw.loading {
			return
		}
		sw.SetPalette(colors.StringToColorBlindMode(s))
	})
}

func (sw *Widget) showPicker(f Field) {
	picker := colorpicker.New(250, colorpicker.StyleHueCircle)
	picker.SetOnChanged(func(c color.Color) {
		sw.SetColor(f, color.NRGBAModel.Convert(c).(color.NRGBA))
	})

	canvas := fyne.CurrentApp().Driver().CanvasForObject(sw)

	var modal *widget.PopUp
	modal = widget.NewModalPopUp(container.NewVBox(
		widget.NewLabel(f.String()),
		picker,
		widget.NewButton("Close", func() {
			modal.Hide()
		}),
	), canvas)
	modal.Show()
}
