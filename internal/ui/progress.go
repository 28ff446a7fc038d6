package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display.
// All methods are safe to call on a nil controller.
type ProgressController struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display if in interactive mode.
// Returns nil if not in interactive mode
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	p := tea.NewProgram(NewModel(), tea.WithOutput(ui.ErrWriter))
	ctrl := &ProgressController{
		program: p,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(ctrl.done)
		// Rendering failures only lose the progress display.
		_, _ = p.Run()
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	pc.send(StageMsg(stage))
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	pc.send(OperationMsg(op))
}

// SetPackageCount sets the number of packages to analyze
func (pc *ProgressController) SetPackageCount(count int) {
	pc.send(PackageCountMsg(count))
}

// PackageDone records that a package has been analyzed
func (pc *ProgressController) PackageDone(path string) {
	pc.send(PackageDoneMsg(path))
}

// Done signals that all work is complete and waits for the display to clear.
// It may be called more than once.
func (pc *ProgressController) Done(err error) {
	if pc == nil || pc.program == nil {
		return
	}
	select {
	case <-pc.done:
		return
	default:
	}
	pc.program.Send(DoneMsg{Err: err})
	<-pc.done
}

func (pc *ProgressController) send(msg tea.Msg) {
	if pc != nil && pc.program != nil {
		pc.program.Send(msg)
	}
}
