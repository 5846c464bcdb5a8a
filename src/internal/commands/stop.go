package commands

func CreateStopCommand() *StopCommand {
	return &StopCommand{pairCommand: newPairCommand("stop")}
}

// StopCommand reverts "start". Flushed addresses are not restored.
type StopCommand struct {
	pairCommand
}

func (c *StopCommand) Run() error {
	return c.tap.Stop(c.interfaceA, c.interfaceB)
}
