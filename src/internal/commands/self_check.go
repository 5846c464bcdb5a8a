package commands

import (
	"fmt"

	"github.com/maksimkurb/keen-tap/src/internal/log"
	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

func CreateSelfCheckCommand() *SelfCheckCommand {
	return &SelfCheckCommand{pairCommand: newPairCommand("self-check")}
}

// SelfCheckCommand verifies that the kernel state of the pair matches an applied tap.
type SelfCheckCommand struct {
	pairCommand
}

func (c *SelfCheckCommand) Run() error {
	log.Infof("Running self-check for %s <-> %s...", c.interfaceA, c.interfaceB)

	results, err := c.tap.Check(c.interfaceA, c.interfaceB)
	if err != nil {
		return err
	}

	current := ""
	for _, result := range results {
		if result.Interface != current {
			current = result.Interface
			log.Infof("----------------- Interface [%s] ------------------", current)
		}

		if result.OK {
			log.Infof("[%s] %s", result.Component, result.Message)
		} else {
			log.Errorf("[%s] %s (expected: %s, actual: %s)", result.Component, result.Message, result.Expected, result.Actual)
		}
	}

	if !networking.AllOK(results) {
		log.Errorf("Self-check completed with failures")
		return fmt.Errorf("self-check failed")
	}

	log.Infof("Self-check completed successfully")
	return nil
}
