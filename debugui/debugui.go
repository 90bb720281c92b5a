// Package debugui provides Dear ImGui inspector windows for a running game.
// Windows are plain render functions collected by an Overlay, which the host
// draws between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should skip game input while the matching flag is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay draws its items in registration order.
type Overlay struct {
	items   []Item
	input   InputState
	visible bool
}

func NewOverlay() *Overlay {
	return &Overlay{visible: true}
}

// Add registers a render function.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, Item{Render: render})
}

func (o *Overlay) Visible() bool { return o.visible }

// Toggle shows or hides every window.
func (o *Overlay) Toggle() { o.visible = !o.visible }

// Input reports the capture state sampled by the last Render.
func (o *Overlay) Input() InputState { return o.input }

// Render samples input capture and draws all items. A hidden overlay draws
// nothing and captures nothing.
func (o *Overlay) Render() {
	if !o.visible {
		o.input = InputState{}
		return
	}

	o.input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	o.input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}
