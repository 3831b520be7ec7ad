package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isConnected() bool
	Connect(ctx context.Context) error
	Status(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Delete(ctx context.Context) error
	Sync(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Share(ctx context.Context) error
	FetchShare(ctx context.Context) error
	WipeRemote(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the journal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always available:
//	  - help           — show available commands
//	  - add            — write a new journal entry
//	  - list           — list entries
//	  - show           — show a single entry (interactive ID prompt)
//	  - delete         — soft-delete an entry
//	  - export         — write an encrypted backup file
//	  - import         — restore entries from a backup file
//	  - fetchshare     — open a shared entry by id and key
//	  - exit | quit    — leave the program
//
//	Not connected:
//	  - connect        — enable sync with username and passphrase
//
//	Connected:
//	  - sync           — synchronize with the backend
//	  - status         — show session and service status
//	  - share          — create an expiring share link for one entry
//	  - wiperemote     — delete the remote record (passphrase confirmed)
//	  - disconnect     — drop the session and wipe the passphrase
//
// Any errors returned by command handlers are reported here but do not stop
// the loop. This keeps the REPL resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sib> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isConnected() {
				printlnFn("Available commands: add, (l)ist, show, delete, sync, status, export, import, share, fetchshare, wiperemote, disconnect, exit")
			} else {
				printlnFn("Available commands: connect, add, (l)ist, show, delete, export, import, fetchshare, exit")
			}

		case "connect":
			err = a.Connect(ctx)

		case "status":
			err = a.Status(ctx)

		case "add":
			err = a.Add(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "show":
			err = a.Show(ctx)

		case "delete":
			err = a.Delete(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "export":
			err = a.Export(ctx)

		case "import":
			err = a.Import(ctx)

		case "share":
			err = a.Share(ctx)

		case "fetchshare":
			err = a.FetchShare(ctx)

		case "wiperemote":
			err = a.WipeRemote(ctx)

		case "disconnect":
			err = a.Disconnect(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
