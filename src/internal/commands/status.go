package commands

import (
	"fmt"
)

func CreateStatusCommand() *StatusCommand {
	return &StatusCommand{pairCommand: newPairCommand("status")}
}

// StatusCommand prints the status report of both interfaces, in pair order. A failure on
// the second interface still prints the first one.
type StatusCommand struct {
	pairCommand
}

func (c *StatusCommand) Run() error {
	statuses, err := c.tap.Status(c.interfaceA, c.interfaceB)
	for _, status := range statuses {
		fmt.Fprint(c.out(), status.String())
	}
	return err
}
