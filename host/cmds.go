package host

import (
	"strings"

	"github.com/beevik/cmd"
)

// A command describes a monitor command and the host method that runs it.
type command struct {
	path        string // full command name, e.g. "breakpoint add"
	brief       string
	description string
	usage       string
	run         func(h *Host, args []string) error
}

var (
	cmds     *cmd.Tree
	commands []*command
)

// Register a command with the tree 't'. Subtree commands are prefixed by
// the subtree name in 'parent'.
func addCommand(t *cmd.Tree, parent string, c command) {
	name := c.path
	if parent != "" {
		c.path = parent + " " + name
	}
	cc := &c
	commands = append(commands, cc)
	t.AddCommand(cmd.CommandDescriptor{
		Name:        name,
		Brief:       c.brief,
		Description: c.description,
		Usage:       c.usage,
		Data:        cc,
	})
}

// Find the commands whose full name begins with 'prefix'.
func findCommands(prefix string) []*command {
	var found []*command
	for _, c := range commands {
		if c.path == prefix || strings.HasPrefix(c.path, prefix+" ") {
			found = append(found, c)
		}
	}
	return found
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "w65xx"})
	addCommand(root, "", command{
		path:        "help",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		run:         (*Host).cmdHelp,
	})
	addCommand(root, "", command{
		path:  "boot",
		brief: "Boot the CPU",
		description: "Load the program counter from the reset vector at" +
			" $FFFC. Registers other than the program counter are left" +
			" unchanged.",
		usage: "boot",
		run:   (*Host).cmdBoot,
	})
	addCommand(root, "", command{
		path:  "reset",
		brief: "Reset the CPU",
		description: "Reinitialize all CPU registers and then boot from the" +
			" reset vector. Memory and the cycle counter are not affected.",
		usage: "reset",
		run:   (*Host).cmdReset,
	})

	// Breakpoint commands
	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	addCommand(bp, "breakpoint", command{
		path:        "list",
		brief:       "List breakpoints",
		description: "List all current breakpoints.",
		usage:       "breakpoint list",
		run:         (*Host).cmdBreakpointList,
	})
	addCommand(bp, "breakpoint", command{
		path:  "add",
		brief: "Add a breakpoint",
		description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		usage: "breakpoint add <address>",
		run:   (*Host).cmdBreakpointAdd,
	})
	addCommand(bp, "breakpoint", command{
		path:        "remove",
		brief:       "Remove a breakpoint",
		description: "Remove a breakpoint at the specified address.",
		usage:       "breakpoint remove <address>",
		run:         (*Host).cmdBreakpointRemove,
	})
	addCommand(bp, "breakpoint", command{
		path:        "enable",
		brief:       "Enable a breakpoint",
		description: "Enable a previously added breakpoint.",
		usage:       "breakpoint enable <address>",
		run:         (*Host).cmdBreakpointEnable,
	})
	addCommand(bp, "breakpoint", command{
		path:  "disable",
		brief: "Disable a breakpoint",
		description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running the" +
			" CPU.",
		usage: "breakpoint disable <address>",
		run:   (*Host).cmdBreakpointDisable,
	})

	// Data breakpoint commands
	db := root.AddSubtree(cmd.TreeDescriptor{Name: "databreakpoint", Brief: "Data breakpoint commands"})
	addCommand(db, "databreakpoint", command{
		path:        "list",
		brief:       "List data breakpoints",
		description: "List all current data breakpoints.",
		usage:       "databreakpoint list",
		run:         (*Host).cmdDataBreakpointList,
	})
	addCommand(db, "databreakpoint", command{
		path:  "add",
		brief: "Add a data breakpoint",
		description: "Add a new data breakpoint at the specified" +
			" memory address. When the CPU stores data at this address, the" +
			" breakpoint will stop the CPU. Optionally, a byte" +
			" value may be specified, and the CPU will stop only" +
			" when this value is stored. The data breakpoint starts" +
			" enabled.",
		usage: "databreakpoint add <address> [<value>]",
		run:   (*Host).cmdDataBreakpointAdd,
	})
	addCommand(db, "databreakpoint", command{
		path:  "remove",
		brief: "Remove a data breakpoint",
		description: "Remove a previously added data breakpoint at" +
			" the specified memory address.",
		usage: "databreakpoint remove <address>",
		run:   (*Host).cmdDataBreakpointRemove,
	})
	addCommand(db, "databreakpoint", command{
		path:        "enable",
		brief:       "Enable a data breakpoint",
		description: "Enable a previously added data breakpoint.",
		usage:       "databreakpoint enable <address>",
		run:         (*Host).cmdDataBreakpointEnable,
	})
	addCommand(db, "databreakpoint", command{
		path:        "disable",
		brief:       "Disable a data breakpoint",
		description: "Disable a previously added data breakpoint.",
		usage:       "databreakpoint disable <address>",
		run:         (*Host).cmdDataBreakpointDisable,
	})

	addCommand(root, "", command{
		path:  "disassemble",
		brief: "Disassemble code",
		description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		usage: "disassemble [<address>] [<lines>]",
		run:   (*Host).cmdDisassemble,
	})
	addCommand(root, "", command{
		path:  "evaluate",
		brief: "Evaluate an expression",
		description: "Evaluate an integer expression and display the" +
			" result. Registers a, x, y, sp and pc may be used. Hexadecimal" +
			" numbers start with '$' and binary numbers start with '%'.",
		usage: "evaluate <expression>",
		run:   (*Host).cmdEval,
	})

	// Interrupt commands
	in := root.AddSubtree(cmd.TreeDescriptor{Name: "interrupt", Brief: "Interrupt commands"})
	addCommand(in, "interrupt", command{
		path:  "irq",
		brief: "Raise a maskable interrupt",
		description: "Push the program counter and status register and" +
			" jump through the IRQ vector at $FFFE. Ignored while the" +
			" interrupt disable flag is set.",
		usage: "interrupt irq",
		run:   (*Host).cmdInterruptIRQ,
	})
	addCommand(in, "interrupt", command{
		path:  "nmi",
		brief: "Raise a non-maskable interrupt",
		description: "Push the program counter and status register and" +
			" jump through the NMI vector at $FFFA.",
		usage: "interrupt nmi",
		run:   (*Host).cmdInterruptNMI,
	})

	addCommand(root, "", command{
		path:  "load",
		brief: "Load a binary image",
		description: "Load the contents of a binary image into memory." +
			" If no address is given, the image is placed so that it ends" +
			" at $FFFF, which is where ROM images keep their vectors.",
		usage: "load <filename> [<address>]",
		run:   (*Host).cmdLoad,
	})

	// Memory commands
	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	addCommand(me, "memory", command{
		path:  "dump",
		brief: "Dump memory",
		description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		usage: "memory dump [<address>] [<bytes>]",
		run:   (*Host).cmdMemoryDump,
	})
	addCommand(me, "memory", command{
		path:  "set",
		brief: "Set memory",
		description: "Store one or more byte values to memory starting" +
			" at the specified address.",
		usage: "memory set <address> <byte> [<byte> ...]",
		run:   (*Host).cmdMemorySet,
	})
	addCommand(me, "memory", command{
		path:        "clear",
		brief:       "Clear memory",
		description: "Set every byte of the 64K address space to zero.",
		usage:       "memory clear",
		run:         (*Host).cmdMemoryClear,
	})

	addCommand(root, "", command{
		path:        "quit",
		brief:       "Quit the program",
		description: "Quit the program.",
		usage:       "quit",
		run:         (*Host).cmdQuit,
	})
	addCommand(root, "", command{
		path:  "register",
		brief: "View or change register values",
		description: "When used without arguments, this command displays" +
			" the current contents of the CPU registers. When used with" +
			" arguments, this command changes the value of a register or" +
			" one of the CPU's status flags. Allowed register names include" +
			" A, X, Y, PC and SP. Allowed status flag names include N" +
			" (Negative), Z (Zero), C (Carry), I (InterruptDisable), D" +
			" (Decimal) and V (Overflow).",
		usage: "register [<name> <value>]",
		run:   (*Host).cmdRegister,
	})
	addCommand(root, "", command{
		path:  "run",
		brief: "Run the CPU",
		description: "Run the CPU until a breakpoint is hit, a BRK is" +
			" trapped, an illegal opcode is fetched or until the user" +
			" types Ctrl-C.",
		usage: "run [<address>]",
		run:   (*Host).cmdRun,
	})
	addCommand(root, "", command{
		path:  "set",
		brief: "Set a configuration variable",
		description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		usage: "set [<var> <value>]",
		run:   (*Host).cmdSet,
	})

	// Step commands
	st := root.AddSubtree(cmd.TreeDescriptor{Name: "step", Brief: "Step the debugger"})
	addCommand(st, "step", command{
		path:  "in",
		brief: "Step into next instruction",
		description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		usage: "step in [<count>]",
		run:   (*Host).cmdStepIn,
	})
	addCommand(st, "step", command{
		path:  "over",
		brief: "Step over next instruction",
		description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step over the subroutine." +
			" The number of steps may be specified as an option.",
		usage: "step over [<count>]",
		run:   (*Host).cmdStepOver,
	})

	// Add command shortcuts.
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("irq", "interrupt irq")
	root.AddShortcut("nmi", "interrupt nmi")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step over")
	root.AddShortcut("si", "step in")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}
