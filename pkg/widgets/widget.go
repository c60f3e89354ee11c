// Package widgets holds the native file dialogs and the custom widgets of
// the window.
package widgets

import (
	"log"

	"fyne.io/fyne/v2"
	sdialog "github.com/sqweek/dialog"
)

// SelectFolder asks for a directory and calls cb on the UI thread.
func SelectFolder(cb func(dir string), title string) {
	go func() {
		dir, err := sdialog.Directory().Title(title).Browse()
		if err != nil {
			if err.Error() == "Cancelled" {
				return
			}
			log.Println(err)
			return
		}
		fyne.Do(func() {
			cb(dir)
		})
	}()
}

func SelectFile(cb func(filename string), desc string, exts ...string) {
	go func() {
		filename, err := sdialog.File().Filter(desc, exts...).Load()
		if err != nil {
			if err.Error() == "Cancelled" {
				return
			}
			fyne.LogError("Error selecting file", err)
			return
		}
		fyne.Do(func() { cb(filename) })
	}()
}

func SaveFile(cb func(filename string), desc string, ext string) {
	go func() {
		filename, err := sdialog.File().Filter(desc, ext).Save()
		if err != nil {
			if err.Error() == "Cancelled" {
				return
			}
			fyne.LogError("Error selecting file", err)
			return
		}
		fyne.Do(func() {
			cb(filename)
		})
	}()
}
