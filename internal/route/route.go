// Package route tracks UI focus and selection as a small state machine.
package route

// Screen is the active top-level view.
type Screen int

const (
	ScreenDefault Screen = iota
	ScreenHelp
)

// Block is a focusable panel on the default screen.
type Block int

const (
	BlockHelp Block = iota
	BlockTools
	BlockTimer
	BlockTimes
	BlockScramble
	BlockStats
	BlockMain
	blockNone Block = -1
)

// Dir is a navigation direction.
type Dir int

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Tool is an auxiliary view shown in the Main panel.
type Tool int

const (
	ToolWelcome Tool = iota
	ToolChart
	ToolCube
)

// Tools lists the selectable tools in display order.
var Tools = []Tool{ToolWelcome, ToolChart, ToolCube}

func (t Tool) String() string {
	switch t {
	case ToolChart:
		return "Chart"
	case ToolCube:
		return "Cube"
	default:
		return "Welcome"
	}
}

// neighbors encodes the panel grid of the default screen:
//
//	Help  Tools | Scramble
//	Timer       | Stats
//	Times       | Main
//
// A missing direction means the move is a no-op (no wraparound).
var neighbors = map[Block]map[Dir]Block{
	BlockHelp:     {DirRight: BlockTools, DirDown: BlockTimer},
	BlockTools:    {DirLeft: BlockHelp, DirRight: BlockScramble, DirDown: BlockTimer},
	BlockTimer:    {DirUp: BlockHelp, DirDown: BlockTimes, DirRight: BlockStats},
	BlockTimes:    {DirUp: BlockTimer, DirRight: BlockMain},
	BlockScramble: {DirLeft: BlockTools, DirDown: BlockStats},
	BlockStats:    {DirUp: BlockScramble, DirDown: BlockMain, DirLeft: BlockTimer},
	BlockMain:     {DirUp: BlockStats, DirLeft: BlockTimes},
}

// Router is the single source of truth for which panel receives input.
// It owns the two-level focus/selection state, the tool selection, and the
// cursor of the Times table.
type Router struct {
	screen      Screen
	active      Block
	selected    Block
	activeTool  Tool
	toolCursor  int
	timesCursor int
}

// New returns a Router focused on the Timer panel with the Welcome tool.
func New() *Router {
	return &Router{active: BlockTimer, selected: blockNone}
}

// Screen returns the active screen.
func (r *Router) Screen() Screen { return r.screen }

// Active returns the focused block.
func (r *Router) Active() Block { return r.active }

// Selected returns the entered block and whether one is set.
func (r *Router) Selected() (Block, bool) {
	if r.selected == blockNone {
		return 0, false
	}
	return r.selected, true
}

// ActiveTool returns the tool shown in the Main panel.
func (r *Router) ActiveTool() Tool { return r.activeTool }

// ToolCursor returns the cursor position in the Tools list.
func (r *Router) ToolCursor() int { return r.toolCursor }

// TimesCursor returns the cursor row in the Times table (newest first).
func (r *Router) TimesCursor() int { return r.timesCursor }

// Move shifts focus to the grid neighbor, or moves the cursor of the
// selected panel when one is entered. timesLen bounds the Times cursor.
func (r *Router) Move(d Dir, timesLen int) {
	switch r.selected {
	case BlockTools:
		r.toolCursor = step(r.toolCursor, d, len(Tools))
	case BlockTimes:
		r.timesCursor = step(r.timesCursor, d, timesLen)
	case blockNone:
		if next, ok := neighbors[r.active][d]; ok {
			r.active = next
		}
	}
}

func step(cursor int, d Dir, length int) int {
	switch d {
	case DirUp:
		cursor--
	case DirDown:
		cursor++
	default:
		return cursor
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// Enter promotes the focused block to selected, or routes the action into
// the already-selected panel (confirming a Tools choice).
func (r *Router) Enter() {
	if r.selected == blockNone {
		switch r.active {
		case BlockTools, BlockTimes, BlockTimer:
			r.selected = r.active
		}
		return
	}
	if r.selected == BlockTools && r.toolCursor < len(Tools) {
		r.activeTool = Tools[r.toolCursor]
	}
}

// Escape leaves the Help screen if it is shown, otherwise clears the
// selection. With nothing selected on the default screen it is a no-op.
func (r *Router) Escape() {
	if r.screen == ScreenHelp {
		r.screen = ScreenDefault
		return
	}
	r.selected = blockNone
}

// Help toggles the Help screen without touching focus or selection.
func (r *Router) Help() {
	if r.screen == ScreenHelp {
		r.screen = ScreenDefault
	} else {
		r.screen = ScreenHelp
	}
}

// Delete reports whether a delete should be routed to the Times table.
func (r *Router) Delete() bool {
	return r.selected == BlockTimes
}

// ClampTimesCursor keeps the Times cursor valid after the history shrinks.
func (r *Router) ClampTimesCursor(timesLen int) {
	if r.timesCursor >= timesLen {
		r.timesCursor = timesLen - 1
	}
	if r.timesCursor < 0 {
		r.timesCursor = 0
	}
}
