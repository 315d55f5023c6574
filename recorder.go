package charts

import "image"

// CommandType identifies a recorded surface operation.
type CommandType uint8

const (
	CommandSave           CommandType = iota // SaveState
	CommandRestore                           // RestoreState
	CommandClip                              // ClipRect
	CommandTranslate                         // Translate
	CommandRotate                            // Rotate
	CommandLineWidth                         // SetLineWidth
	CommandLineDash                          // SetLineDash
	CommandStrokeColor                       // SetStrokeColor
	CommandFillColor                         // SetFillColor
	CommandStrokeLine                        // StrokeLine
	CommandFillRect                          // FillRect
	CommandStrokeRect                        // StrokeRect
	CommandFillEllipse                       // FillEllipse
	CommandStrokeEllipse                     // StrokeEllipse
	CommandText                              // DrawText
	CommandImage                             // DrawImage
)

// isDraw reports whether the command produces pixels.
func (t CommandType) isDraw() bool {
	return t >= CommandStrokeLine
}

// RenderCommand is a single recorded surface call. Drawing commands carry a
// snapshot of the graphics state they were issued under.
type RenderCommand struct {
	Type CommandType

	// Rect is the clip, rect, ellipse bounds or image destination.
	Rect Rect
	// X0, Y0, X1, Y1 hold line endpoints, the text origin (X0, Y0),
	// translation (X0, Y0), rotation (X0) or line width (X0).
	X0, Y0, X1, Y1 float64

	Text  string
	Font  Font
	Color Color
	Dash  []float64
	Image image.Image

	State DrawState
}

// Recorder is a Surface that records every call for later inspection or
// replay onto another Surface.
type Recorder struct {
	StateStack
	Commands []RenderCommand
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{StateStack: NewStateStack()}
}

// Reset drops all recorded commands and restores the initial state.
func (r *Recorder) Reset() {
	r.StateStack = NewStateStack()
	r.Commands = r.Commands[:0]
}

func (r *Recorder) push(cmd RenderCommand) {
	if cmd.Type.isDraw() {
		cmd.State = r.cur
		cmd.State.Dash = append([]float64(nil), r.cur.Dash...)
	}
	r.Commands = append(r.Commands, cmd)
}

func (r *Recorder) SaveState() {
	r.StateStack.SaveState()
	r.push(RenderCommand{Type: CommandSave})
}

func (r *Recorder) RestoreState() {
	r.StateStack.RestoreState()
	r.push(RenderCommand{Type: CommandRestore})
}

func (r *Recorder) ClipRect(rect Rect) {
	r.StateStack.ClipRect(rect)
	r.push(RenderCommand{Type: CommandClip, Rect: rect})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.StateStack.Translate(dx, dy)
	r.push(RenderCommand{Type: CommandTranslate, X0: dx, Y0: dy})
}

func (r *Recorder) Rotate(radians float64) {
	r.StateStack.Rotate(radians)
	r.push(RenderCommand{Type: CommandRotate, X0: radians})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.StateStack.SetLineWidth(w)
	r.push(RenderCommand{Type: CommandLineWidth, X0: w})
}

func (r *Recorder) SetLineDash(phase float64, lengths []float64) {
	r.StateStack.SetLineDash(phase, lengths)
	r.push(RenderCommand{Type: CommandLineDash, X0: phase, Dash: append([]float64(nil), lengths...)})
}

func (r *Recorder) SetStrokeColor(c Color) {
	r.StateStack.SetStrokeColor(c)
	r.push(RenderCommand{Type: CommandStrokeColor, Color: c})
}

func (r *Recorder) SetFillColor(c Color) {
	r.StateStack.SetFillColor(c)
	r.push(RenderCommand{Type: CommandFillColor, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64) {
	r.push(RenderCommand{Type: CommandStrokeLine, X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (r *Recorder) FillRect(rect Rect) {
	r.push(RenderCommand{Type: CommandFillRect, Rect: rect})
}

func (r *Recorder) StrokeRect(rect Rect) {
	r.push(RenderCommand{Type: CommandStrokeRect, Rect: rect})
}

func (r *Recorder) FillEllipse(rect Rect) {
	r.push(RenderCommand{Type: CommandFillEllipse, Rect: rect})
}

func (r *Recorder) StrokeEllipse(rect Rect) {
	r.push(RenderCommand{Type: CommandStrokeEllipse, Rect: rect})
}

func (r *Recorder) DrawText(s string, x, y float64, f Font, c Color) {
	r.push(RenderCommand{Type: CommandText, Text: s, X0: x, Y0: y, Font: f, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, dst Rect) {
	r.push(RenderCommand{Type: CommandImage, Image: img, Rect: dst})
}

// Filter returns the recorded commands of type t in issue order.
func (r *Recorder) Filter(t CommandType) []RenderCommand {
	var out []RenderCommand
	for _, c := range r.Commands {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for i := range r.Commands {
		if r.Commands[i].Type == t {
			n++
		}
	}
	return n
}

// DrawCount returns the number of pixel-producing commands.
func (r *Recorder) DrawCount() int {
	n := 0
	for i := range r.Commands {
		if r.Commands[i].Type.isDraw() {
			n++
		}
	}
	return n
}

// Texts returns the strings of all recorded text commands in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Commands {
		if c.Type == CommandText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Replay issues every recorded command to dst in order.
func (r *Recorder) Replay(dst Surface) {
	for i := range r.Commands {
		c := &r.Commands[i]
		switch c.Type {
		case CommandSave:
			dst.SaveState()
		case CommandRestore:
			dst.RestoreState()
		case CommandClip:
			dst.ClipRect(c.Rect)
		case CommandTranslate:
			dst.Translate(c.X0, c.Y0)
		case CommandRotate:
			dst.Rotate(c.X0)
		case CommandLineWidth:
			dst.SetLineWidth(c.X0)
		case CommandLineDash:
			dst.SetLineDash(c.X0, c.Dash)
		case CommandStrokeColor:
			dst.SetStrokeColor(c.Color)
		case CommandFillColor:
			dst.SetFillColor(c.Color)
		case CommandStrokeLine:
			dst.StrokeLine(c.X0, c.Y0, c.X1, c.Y1)
		case CommandFillRect:
			dst.FillRect(c.Rect)
		case CommandStrokeRect:
			dst.StrokeRect(c.Rect)
		case CommandFillEllipse:
			dst.FillEllipse(c.Rect)
		case CommandStrokeEllipse:
			dst.StrokeEllipse(c.Rect)
		case CommandText:
			dst.DrawText(c.Text, c.X0, c.Y0, c.Font, c.Color)
		case CommandImage:
			dst.DrawImage(c.Image, c.Rect)
		}
	}
}
