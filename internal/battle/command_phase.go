package battle

import "log/slog"

// CommandPhase drives menu selection for one actor. It publishes the
// actor's available commands on every menu change, runs chosen commands
// through the context history and announces turn-ending commands.
type CommandPhase struct {
	ctx    *Context
	logger *slog.Logger
	detach func()

	actor     Combatant
	active    bool
	executing bool
	offered   []Command
}

func NewCommandPhase(logger *slog.Logger) *CommandPhase {
	return &CommandPhase{logger: loggerOrDefault(logger)}
}

// Attach binds the controller to ctx and follows its menu changes.
func (p *CommandPhase) Attach(ctx *Context) {
	p.Detach()
	if ctx == nil {
		return
	}
	p.ctx = ctx
	p.detach = ctx.events.MenuStateChanged.Subscribe(p.handleMenuChanged)
}

// Detach ends any selection and forgets the context.
func (p *CommandPhase) Detach() {
	p.End()
	if p.detach != nil {
		p.detach()
		p.detach = nil
	}
	p.ctx = nil
}

func (p *CommandPhase) Active() bool       { return p.active }
func (p *CommandPhase) Actor() Combatant   { return p.actor }
func (p *CommandPhase) Offered() []Command { return append([]Command(nil), p.offered...) }

// Begin opens selection for actor and publishes its first menu.
func (p *CommandPhase) Begin(actor Combatant) bool {
	if p.ctx == nil {
		p.logger.Error("commands: begin without a context")
		return false
	}
	if actor == nil {
		p.logger.Error("commands: begin without an actor")
		return false
	}
	p.actor = actor
	p.active = true
	p.publish()
	return true
}

// End closes selection. An empty offer is published if selection was open.
func (p *CommandPhase) End() {
	wasActive := p.active
	p.active = false
	if wasActive && p.actor != nil {
		p.publishCleared(p.actor)
	}
	p.actor = nil
	p.offered = nil
}

// Execute runs cmd for the active actor. A non-nil target becomes the
// selected target first. Turn-ending commands close selection and fire
// TurnEnding; anything else republishes the menu.
func (p *CommandPhase) Execute(cmd Command, target Combatant) bool {
	if !p.active || cmd == nil || p.ctx == nil {
		return false
	}
	if target != nil {
		p.ctx.selectedTarget = target
	}

	p.executing = true
	ok := p.ctx.history.Execute(p.ctx, cmd)
	p.executing = false
	if !ok {
		p.logger.Debug("commands: rejected", "command", cmd.ID(), "actor", combatantName(p.actor))
		return false
	}
	p.logger.Debug("commands: executed", "command", cmd.ID(), "actor", combatantName(p.actor))

	if cmd.EndsTurn() {
		p.active = false
		p.publishCleared(p.actor)
		p.ctx.events.TurnEnding.Emit(cmd)
		return true
	}
	p.publish()
	return true
}

// Undo reverts the newest undoable command and republishes the menu.
func (p *CommandPhase) Undo() bool {
	if !p.active || p.ctx == nil {
		return false
	}
	p.executing = true
	ok := p.ctx.history.Undo(p.ctx)
	p.executing = false
	if ok {
		p.publish()
	}
	return ok
}

// AvailableFor returns what actor may choose right now, after the side
// filter. Enemies only ever get strikes and always get at least one.
func (p *CommandPhase) AvailableFor(actor Combatant) []Command {
	if actor == nil || p.ctx == nil {
		return nil
	}
	var cmds []Command
	if src, ok := actor.(CommandSource); ok {
		cmds = src.AvailableCommands(p.ctx)
	}
	return FilterForSide(actor, cmds)
}

// FilterForSide drops nil commands and, for enemies, anything that is not
// an Attack or WeaponAttack. An enemy left with nothing gets a basic Attack.
func FilterForSide(actor Combatant, cmds []Command) []Command {
	if actor == nil {
		return nil
	}
	out := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if actor.Side() == SideEnemy {
			switch cmd.(type) {
			case *AttackCommand, *WeaponAttackCommand:
			default:
				continue
			}
		}
		out = append(out, cmd)
	}
	if actor.Side() == SideEnemy && len(out) == 0 {
		out = append(out, NewAttack())
	}
	return out
}

func (p *CommandPhase) handleMenuChanged(MenuState) {
	if !p.active || p.executing || p.actor == nil {
		return
	}
	p.publish()
}

func (p *CommandPhase) publish() {
	if !p.active || p.ctx == nil || p.actor == nil {
		p.publishCleared(p.actor)
		return
	}
	cmds := p.AvailableFor(p.actor)
	if len(cmds) == 0 {
		p.publishCleared(p.actor)
		return
	}
	p.offered = cmds
	p.ctx.events.CommandsAvailable.Emit(CommandOffer{
		Actor:    p.actor,
		Menu:     p.ctx.menu.Current(),
		Commands: append([]Command(nil), cmds...),
	})
}

func (p *CommandPhase) publishCleared(actor Combatant) {
	p.offered = nil
	if p.ctx == nil {
		return
	}
	p.ctx.events.CommandsAvailable.Emit(CommandOffer{Actor: actor, Menu: p.ctx.menu.Current()})
	p.ctx.events.MenuHidden.Emit(actor)
}
