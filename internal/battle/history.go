package battle

import "log/slog"

// CommandKind identifies a command variant.
type CommandKind int

const (
	KindPrepareAttack CommandKind = iota
	KindSelectWeapon
	KindOpenMenu
	KindConfirmPending
	KindAttack
	KindWeaponAttack
	KindFlee
)

func (k CommandKind) String() string {
	switch k {
	case KindPrepareAttack:
		return "prepare_attack"
	case KindSelectWeapon:
		return "select_weapon"
	case KindOpenMenu:
		return "open_menu"
	case KindConfirmPending:
		return "confirm_pending"
	case KindAttack:
		return "attack"
	case KindWeaponAttack:
		return "weapon_attack"
	case KindFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Command is one menu action. The set of variants is closed; see commands.go.
//
// CanUndo is asked right after Execute. A command that answers true is kept
// on the history stack and asked again before Undo.
type Command interface {
	ID() string
	Label() string
	Kind() CommandKind
	EndsTurn() bool
	CanExecute(ctx *Context) bool
	Execute(ctx *Context)
	CanUndo(ctx *Context) bool
	Undo(ctx *Context)

	command()
}

// History executes commands and keeps the undoable ones on a stack.
type History struct {
	stack  []Command
	logger *slog.Logger
}

func NewHistory(logger *slog.Logger) *History {
	return &History{logger: loggerOrDefault(logger)}
}

// Execute runs cmd if it can execute. Undoable commands are pushed.
func (h *History) Execute(ctx *Context, cmd Command) bool {
	if ctx == nil || cmd == nil {
		h.logger.Debug("history: execute skipped", "reason", "missing context or command")
		return false
	}
	if !cmd.CanExecute(ctx) {
		h.logger.Debug("history: command cannot execute", "command", cmd.ID())
		return false
	}
	cmd.Execute(ctx)
	if cmd.CanUndo(ctx) {
		h.stack = append(h.stack, cmd)
	}
	return true
}

// Undo pops the newest command and reverts it. A popped command that can no
// longer undo is dropped.
func (h *History) Undo(ctx *Context) bool {
	if ctx == nil || len(h.stack) == 0 {
		return false
	}
	last := len(h.stack) - 1
	cmd := h.stack[last]
	h.stack[last] = nil
	h.stack = h.stack[:last]
	if !cmd.CanUndo(ctx) {
		h.logger.Debug("history: command no longer undoable", "command", cmd.ID())
		return false
	}
	cmd.Undo(ctx)
	return true
}

func (h *History) Clear() {
	for i := range h.stack {
		h.stack[i] = nil
	}
	h.stack = h.stack[:0]
}

func (h *History) Len() int {
	return len(h.stack)
}

// Peek returns the newest undoable command, or nil.
func (h *History) Peek() Command {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
