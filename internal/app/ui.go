package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"transferviz/flow"
)

type uiState struct {
	service *Service

	w        fyne.Window
	dropArea *widget.Label
	status   *widget.Label
	log      *widget.Entry

	statusBind binding.String
	logBind    binding.String
	logLines   []string
	logMu      sync.Mutex

	browseBtn *widget.Button
	quitBtn   *widget.Button
}

func buildUI(a fyne.App, svc *Service) *uiState {
	u := &uiState{service: svc}
	u.w = a.NewWindow("Drag a file to visualize transfers -> social network")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")
	u.logBind = binding.NewString()

	instructions := fmt.Sprintf(
		"Drop a transaction spreadsheet here (%s)\nor use Browse... below.",
		strings.Join(flow.SupportedExtensions, ", "))
	u.dropArea = widget.NewLabelWithStyle(instructions, fyne.TextAlignCenter, fyne.TextStyle{})
	u.dropArea.Wrapping = fyne.TextWrapWord

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("Processing log")
	u.log.Disable()

	u.status = widget.NewLabelWithData(u.statusBind)

	u.browseBtn = widget.NewButtonWithIcon("Browse...", theme.FolderOpenIcon(), func() { u.onBrowse() })
	u.quitBtn = widget.NewButtonWithIcon("Quit", theme.CancelIcon(), func() { u.w.Close() })

	buttons := container.NewBorder(nil, nil, u.browseBtn, u.quitBtn)
	content := container.NewBorder(
		nil,
		container.NewVBox(buttons, widget.NewSeparator(), u.status),
		nil, nil,
		container.NewVSplit(container.NewMax(u.dropArea), container.NewMax(u.log)),
	)

	u.w.SetContent(content)
	u.w.Resize(fyne.NewSize(800, 400))

	// Multi-file drops take the first path, matching the browse flow which
	// also handles a single file per run.
	u.w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			dialog.ShowError(fmt.Errorf("no valid file path detected"), u.w)
			return
		}
		u.process(uris[0].Path())
	})
	return u
}

func (u *uiState) onBrowse() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		u.process(path)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter(flow.SupportedExtensions))
	fd.Show()
}

func (u *uiState) process(path string) {
	u.setBusy(true)
	go func() {
		res, err := u.service.Process(path, func(stage string) {
			u.setStatus(stage)
			u.appendLog(stage)
		})
		u.setBusy(false)
		if err != nil {
			fyne.Do(func() {
				dialog.ShowError(err, u.w)
			})
			u.setStatus("Error - see message")
			u.appendLog(fmt.Sprintf("error: %v", err))
			return
		}
		name := filepath.Base(res.OutputPath)
		if res.Opened {
			u.setStatus(fmt.Sprintf("Done -> opened %s in your browser", name))
		} else {
			u.setStatus(fmt.Sprintf("Done -> wrote %s", name))
		}
		u.appendLog(fmt.Sprintf("graph rendered: %d nodes, %d edges (%d rows)", res.Nodes, res.Edges, res.Rows))
	}()
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() {
		if b {
			u.browseBtn.Disable()
		} else {
			u.browseBtn.Enable()
		}
	})
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) appendLog(msg string) {
	now := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %s", now, msg)

	u.logMu.Lock()
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > 200 {
		u.logLines = u.logLines[len(u.logLines)-200:]
	}
	text := strings.Join(u.logLines, "\n")
	u.logMu.Unlock()

	_ = u.logBind.Set(text)
}
