package commands

func CreateStartCommand() *StartCommand {
	return &StartCommand{pairCommand: newPairCommand("start")}
}

// StartCommand mirrors each interface's ingress traffic to its peer.
type StartCommand struct {
	pairCommand
}

func (c *StartCommand) Run() error {
	return c.tap.Start(c.interfaceA, c.interfaceB)
}
