// Package battle runs a single turn-based battle: a tick-driven phase state
// machine on top of a speed-ordered turn engine, a command phase that offers
// each actor its menu, and an undoable command history.
//
// Everything is single-threaded. The owner calls Orchestrator.Tick once per
// external tick and feeds player or AI choices back through CommandPhase.
// Collaborators observe the battle through the synchronous signals on Events.
package battle
