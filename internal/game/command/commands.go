// Package command provides the command registry, parser, argument validation,
// and the dispatcher that drives a tracker from text commands.
package command

// Categories for organizing commands.
const (
	CategoryTurn      = "turn"
	CategoryCombatant = "combatant"
	CategoryCondition = "condition"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to dispatcher handlers.
const (
	HandlerNext      = "next"
	HandlerAction    = "action"
	HandlerBonus     = "bonus"
	HandlerReaction  = "reaction"
	HandlerDamage    = "damage"
	HandlerHeal      = "heal"
	HandlerCondition = "condition"
	HandlerRemove    = "remove"
	HandlerShow      = "show"
	HandlerInfo      = "info"
	HandlerStatus    = "status"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
)

// Command defines a user-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax, e.g. "damage <targets> <amount>".
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command for help output.
	Category string
	// Handler maps to the dispatcher handler.
	Handler string
}

// BuiltinCommands returns all built-in tracker commands.
func BuiltinCommands() []Command {
	return []Command{
		// Turn commands
		{Name: "next", Aliases: []string{"n"}, Usage: "next", Help: "End the current turn", Category: CategoryTurn, Handler: HandlerNext},
		{Name: "action", Aliases: []string{"a"}, Usage: "action", Help: "Spend the current combatant's action", Category: CategoryTurn, Handler: HandlerAction},
		{Name: "bonus", Aliases: []string{"b", "ba"}, Usage: "bonus", Help: "Spend the current combatant's bonus action", Category: CategoryTurn, Handler: HandlerBonus},
		{Name: "reaction", Aliases: []string{"r"}, Usage: "reaction", Help: "Spend the current combatant's reaction", Category: CategoryTurn, Handler: HandlerReaction},

		// Combatant commands
		{Name: "damage", Aliases: []string{"d", "dmg"}, Usage: "damage <targets> <amount>", Help: "Subtract hit points from targets", Category: CategoryCombatant, Handler: HandlerDamage},
		{Name: "heal", Aliases: []string{"h"}, Usage: "heal <targets> <amount>", Help: "Restore hit points to targets", Category: CategoryCombatant, Handler: HandlerHeal},
		{Name: "show", Aliases: []string{"s", "examine"}, Usage: "show <target>", Help: "Show a combatant's details", Category: CategoryCombatant, Handler: HandlerShow},

		// Condition commands
		{Name: "condition", Aliases: []string{"c", "cond"}, Usage: "condition <targets> <kinds> <duration>", Help: "Apply conditions (duration: next, <n>r, <n>m, forever)", Category: CategoryCondition, Handler: HandlerCondition},
		{Name: "remove", Aliases: []string{"rm"}, Usage: "remove <targets> <kinds>", Help: "Remove conditions", Category: CategoryCondition, Handler: HandlerRemove},
		{Name: "info", Aliases: []string{"i"}, Usage: "info <kind>", Help: "Show a condition's rules text", Category: CategoryCondition, Handler: HandlerInfo},

		// System commands
		{Name: "status", Aliases: []string{"st", "tracker"}, Usage: "status", Help: "Show the initiative tracker", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Usage: "quit", Help: "End the encounter", Category: CategorySystem, Handler: HandlerQuit},
	}
}
