package battle

import "strings"

// ---------------------------------------------------------------------------
// Staging commands
// ---------------------------------------------------------------------------

// staged remembers what a staging command replaced so Undo restores it.
type staged struct {
	executed    bool
	prevPending Command
	prevTarget  Combatant
}

func (s *staged) stage(ctx *Context, pending Command) {
	s.prevPending = ctx.pending
	s.prevTarget = ctx.selectedTarget
	ctx.pending = pending
	ctx.selectedTarget = nil
	ctx.pushMenuState(MenuTargetSelection)
	s.executed = true
}

func (s *staged) unstage(ctx *Context) {
	ctx.pending = s.prevPending
	ctx.selectedTarget = s.prevTarget
	ctx.popMenuState()
	s.executed = false
	s.prevPending = nil
	s.prevTarget = nil
}

func (s *staged) canUnstage(ctx *Context) bool {
	return s.executed && ctx != nil && ctx.menu.Current() == MenuTargetSelection
}

// PrepareAttackCommand stages a basic attack and asks for a target.
type PrepareAttackCommand struct {
	staged
}

func NewPrepareAttack() *PrepareAttackCommand {
	return &PrepareAttackCommand{}
}

func (c *PrepareAttackCommand) ID() string        { return "action.prepare_attack" }
func (c *PrepareAttackCommand) Label() string     { return "Attack" }
func (c *PrepareAttackCommand) Kind() CommandKind { return KindPrepareAttack }
func (c *PrepareAttackCommand) EndsTurn() bool    { return false }
func (c *PrepareAttackCommand) command()          {}

func (c *PrepareAttackCommand) CanExecute(ctx *Context) bool {
	return ctx != nil && ctx.activeActor != nil && ctx.menu.Current() == MenuAction
}

func (c *PrepareAttackCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("prepare attack refused", "menu", menuOf(ctx))
		return
	}
	c.stage(ctx, NewAttack())
}

func (c *PrepareAttackCommand) CanUndo(ctx *Context) bool { return c.canUnstage(ctx) }

func (c *PrepareAttackCommand) Undo(ctx *Context) {
	if !c.CanUndo(ctx) {
		return
	}
	c.unstage(ctx)
}

// SelectWeaponCommand stages a weapon attack from the weapon menu.
type SelectWeaponCommand struct {
	staged
	weaponID   string
	label      string
	multiplier float64
}

// NewSelectWeapon fills in defaults for an empty id or label and treats a
// non-positive multiplier as 1.
func NewSelectWeapon(weaponID, label string, multiplier float64) *SelectWeaponCommand {
	if weaponID == "" {
		weaponID = "weapon.unknown"
	}
	if label == "" {
		label = "Weapon"
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	return &SelectWeaponCommand{weaponID: weaponID, label: label, multiplier: multiplier}
}

func (c *SelectWeaponCommand) ID() string          { return "menu.weapon." + c.weaponID }
func (c *SelectWeaponCommand) Label() string       { return c.label }
func (c *SelectWeaponCommand) Kind() CommandKind   { return KindSelectWeapon }
func (c *SelectWeaponCommand) EndsTurn() bool      { return false }
func (c *SelectWeaponCommand) WeaponID() string    { return c.weaponID }
func (c *SelectWeaponCommand) Multiplier() float64 { return c.multiplier }
func (c *SelectWeaponCommand) command()            {}

func (c *SelectWeaponCommand) CanExecute(ctx *Context) bool {
	return ctx != nil && ctx.menu.Current() == MenuWeapon && ctx.activeActor != nil
}

func (c *SelectWeaponCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("select weapon refused", "weapon", c.weaponID, "menu", menuOf(ctx))
		return
	}
	c.stage(ctx, NewWeaponAttack(c.weaponID, c.label, c.multiplier))
}

func (c *SelectWeaponCommand) CanUndo(ctx *Context) bool { return c.canUnstage(ctx) }

func (c *SelectWeaponCommand) Undo(ctx *Context) {
	if !c.CanUndo(ctx) {
		return
	}
	c.unstage(ctx)
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

// OpenMenuCommand pushes a submenu.
type OpenMenuCommand struct {
	id       string
	label    string
	target   MenuState
	executed bool
}

func NewOpenMenu(id, label string, target MenuState) *OpenMenuCommand {
	if id == "" {
		id = "menu." + target.String()
	}
	if label == "" {
		label = strings.ToUpper(target.String()[:1]) + target.String()[1:]
	}
	return &OpenMenuCommand{id: id, label: label, target: target}
}

func (c *OpenMenuCommand) ID() string        { return c.id }
func (c *OpenMenuCommand) Label() string     { return c.label }
func (c *OpenMenuCommand) Kind() CommandKind { return KindOpenMenu }
func (c *OpenMenuCommand) EndsTurn() bool    { return false }
func (c *OpenMenuCommand) Target() MenuState { return c.target }
func (c *OpenMenuCommand) command()          {}

func (c *OpenMenuCommand) CanExecute(ctx *Context) bool {
	return ctx != nil && c.target != MenuNone && ctx.menu.Current() != c.target
}

func (c *OpenMenuCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("open menu refused", "target", c.target, "menu", menuOf(ctx))
		return
	}
	c.executed = ctx.pushMenuState(c.target)
}

func (c *OpenMenuCommand) CanUndo(ctx *Context) bool {
	return c.executed && ctx != nil && ctx.menu.Current() == c.target && ctx.menu.CanPop()
}

func (c *OpenMenuCommand) Undo(ctx *Context) {
	if !c.CanUndo(ctx) {
		return
	}
	ctx.popMenuState()
	c.executed = false
}

// ---------------------------------------------------------------------------
// Turn-ending commands
// ---------------------------------------------------------------------------

// ConfirmPendingActionCommand hands the staged action to the action phase.
type ConfirmPendingActionCommand struct{}

func NewConfirmPendingAction() *ConfirmPendingActionCommand {
	return &ConfirmPendingActionCommand{}
}

func (c *ConfirmPendingActionCommand) ID() string                { return "action.confirm_pending" }
func (c *ConfirmPendingActionCommand) Label() string             { return "Confirm" }
func (c *ConfirmPendingActionCommand) Kind() CommandKind         { return KindConfirmPending }
func (c *ConfirmPendingActionCommand) EndsTurn() bool            { return true }
func (c *ConfirmPendingActionCommand) CanUndo(ctx *Context) bool { return false }
func (c *ConfirmPendingActionCommand) Undo(ctx *Context)         {}
func (c *ConfirmPendingActionCommand) command()                  {}

func (c *ConfirmPendingActionCommand) CanExecute(ctx *Context) bool {
	return ctx != nil && ctx.pending != nil && ctx.pending.CanExecute(ctx)
}

func (c *ConfirmPendingActionCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("confirm refused", "reason", "no executable pending action")
		return
	}
	ctx.toResolve = ctx.pending
	ctx.pending = nil
	ctx.history.Clear()
	ctx.resetMenu(MenuAction)
}

// AttackCommand resolves a basic attack on the selected target.
type AttackCommand struct{}

func NewAttack() *AttackCommand {
	return &AttackCommand{}
}

func (c *AttackCommand) ID() string                { return "attack.basic" }
func (c *AttackCommand) Label() string             { return "Attack" }
func (c *AttackCommand) Kind() CommandKind         { return KindAttack }
func (c *AttackCommand) EndsTurn() bool            { return true }
func (c *AttackCommand) CanUndo(ctx *Context) bool { return false }
func (c *AttackCommand) Undo(ctx *Context)         {}
func (c *AttackCommand) command()                  {}

func (c *AttackCommand) CanExecute(ctx *Context) bool {
	return canStrike(ctx)
}

func (c *AttackCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("attack refused", "reason", "missing attacker, living target or resolver")
		return
	}
	ctx.resolver.ResolveBasicAttack(ctx.activeActor, ctx.selectedTarget)
}

// WeaponAttackCommand resolves a weapon attack on the selected target.
type WeaponAttackCommand struct {
	weaponID   string
	label      string
	multiplier float64
}

func NewWeaponAttack(weaponID, label string, multiplier float64) *WeaponAttackCommand {
	if weaponID == "" {
		weaponID = "weapon.unknown"
	}
	if label == "" {
		label = "Weapon Attack"
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	return &WeaponAttackCommand{weaponID: weaponID, label: label, multiplier: multiplier}
}

func (c *WeaponAttackCommand) ID() string                { return "action.weapon." + c.weaponID }
func (c *WeaponAttackCommand) Label() string             { return c.label }
func (c *WeaponAttackCommand) Kind() CommandKind         { return KindWeaponAttack }
func (c *WeaponAttackCommand) EndsTurn() bool            { return true }
func (c *WeaponAttackCommand) WeaponID() string          { return c.weaponID }
func (c *WeaponAttackCommand) Multiplier() float64       { return c.multiplier }
func (c *WeaponAttackCommand) CanUndo(ctx *Context) bool { return false }
func (c *WeaponAttackCommand) Undo(ctx *Context)         {}
func (c *WeaponAttackCommand) command()                  {}

func (c *WeaponAttackCommand) CanExecute(ctx *Context) bool {
	return canStrike(ctx)
}

func (c *WeaponAttackCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("weapon attack refused", "weapon", c.weaponID)
		return
	}
	ctx.resolver.ResolveWeaponAttack(ctx.activeActor, ctx.selectedTarget, c.label, c.multiplier)
}

// FleeCommand hands control to the flee handler.
type FleeCommand struct{}

func NewFlee() *FleeCommand {
	return &FleeCommand{}
}

func (c *FleeCommand) ID() string                { return "action.flee" }
func (c *FleeCommand) Label() string             { return "Flee" }
func (c *FleeCommand) Kind() CommandKind         { return KindFlee }
func (c *FleeCommand) EndsTurn() bool            { return true }
func (c *FleeCommand) CanUndo(ctx *Context) bool { return false }
func (c *FleeCommand) Undo(ctx *Context)         {}
func (c *FleeCommand) command()                  {}

func (c *FleeCommand) CanExecute(ctx *Context) bool {
	return ctx != nil && ctx.activeActor != nil && ctx.flee != nil
}

func (c *FleeCommand) Execute(ctx *Context) {
	if !c.CanExecute(ctx) {
		logFor(ctx).Debug("flee refused", "reason", "no actor or flee handler")
		return
	}
	actor := ctx.activeActor
	ctx.history.Clear()
	ctx.pending = nil
	ctx.flee.HandleFlee(actor)
}

func canStrike(ctx *Context) bool {
	if ctx == nil || ctx.activeActor == nil || ctx.resolver == nil {
		return false
	}
	return ctx.selectedTarget != nil && ctx.selectedTarget.IsAlive()
}

func menuOf(ctx *Context) MenuState {
	if ctx == nil {
		return MenuNone
	}
	return ctx.menu.Current()
}
