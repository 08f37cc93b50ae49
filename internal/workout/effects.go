package workout

import (
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
	"github.com/pterm/pterm"
)

// Effects receives the feedback trigger points of a running timer:
// a light tick inside the final seconds of any countdown, a stronger
// cue on every phase change, and a success cue when a group completes.
type Effects interface {
	Tick()
	PhaseChange(phase Phase)
	Success(title string)
}

// NopEffects discards all effect triggers.
type NopEffects struct{}

func (NopEffects) Tick()             {}
func (NopEffects) PhaseChange(Phase) {}
func (NopEffects) Success(string)    {}

// NotifyEffects renders effects as terminal bells and desktop
// notifications.
type NotifyEffects struct {
	// Enabled gates desktop notifications; the terminal bell always
	// sounds.
	Enabled bool
}

func (e NotifyEffects) Tick() {
	fmt.Fprint(os.Stdout, "\a")
}

func (e NotifyEffects) PhaseChange(phase Phase) {
	fmt.Fprint(os.Stdout, "\a\a")

	if !e.Enabled {
		return
	}

	var msg string

	switch phase {
	case PhaseWork, PhaseSetActive:
		msg = "Time to work"
	case PhaseResting, PhaseCircuitRest, PhaseRoundRest:
		msg = "Rest now"
	case PhaseComplete:
		msg = "Group complete"
	default:
		msg = "Get ready"
	}

	err := beeep.Notify("Spotter", msg, "")
	if err != nil {
		pterm.Debug.Printfln("unable to display notification: %v", err)
	}
}

func (e NotifyEffects) Success(title string) {
	if !e.Enabled {
		return
	}

	err := beeep.Notify("Spotter", title, "")
	if err != nil {
		pterm.Debug.Printfln("unable to display notification: %v", err)
	}
}
