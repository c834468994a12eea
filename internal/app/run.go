package app

import (
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"transferviz/flow"
)

const fyneAppID = "dev.transferviz.app"

// Run loads configuration and starts the desktop UI.
func Run() error {
	cfg, err := flow.LoadConfig("")
	if err != nil {
		return err
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	svc := NewService(cfg, log)
	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, svc)
	u.w.ShowAndRun()
	return nil
}
