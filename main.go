package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/roffe/empol/pkg/assets"
	"github.com/roffe/empol/pkg/config"
	"github.com/roffe/empol/pkg/debug"
	"github.com/roffe/empol/pkg/theme"
	"github.com/roffe/empol/pkg/windows"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	cfg, err := config.Parse("empol", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	if cfg.Debug {
		if err := debug.Enable("debug.log"); err != nil {
			log.Println(err)
		}
		defer debug.Close()
	}

	a := app.NewWithID("com.roffe.empol")
	a.SetIcon(assets.Icon)
	a.Settings().SetTheme(&theme.EmTheme{})

	mw, err := windows.NewMainWindow(a, cfg)
	if err != nil {
		log.Fatal(err)
	}
	mw.ShowAndRun()
}
