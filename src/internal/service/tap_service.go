package service

import (
	"sync"

	"github.com/maksimkurb/keen-tap/src/internal/domain"
	"github.com/maksimkurb/keen-tap/src/internal/log"
	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

// TapService applies, reverts and inspects a tap on an interface pair.
//
// Interfaces are always processed A then B, each interface completely before the next.
// There is no rollback: Start stops at the first fatal error and leaves whatever was
// already applied in place. Running Stop afterwards cleans it up.
type TapService struct {
	engine domain.TapEngine
	mu     sync.Mutex
}

// NewTapService creates a new tap service.
func NewTapService(engine domain.TapEngine) *TapService {
	return &TapService{engine: engine}
}

// peers returns the (interface, peer) sequence for a pair.
func peers(a, b string) [][2]string {
	return [][2]string{{a, b}, {b, a}}
}

// Start turns the pair into a tap.
//
// Per interface: remove qdisc, flush addresses, add ingress qdisc, install the mirror
// filter to the peer, disable IPv6, enable promiscuous mode. IPv6 failures only warn;
// every other failure aborts.
func (s *TapService) Start(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Infof("Starting tap %s <-> %s", a, b)

	for _, p := range peers(a, b) {
		iface, peer := p[0], p[1]
		log.Infof("----------------- Interface [%s] ------------------", iface)

		if _, err := s.engine.RemoveIngressQdisc(iface); err != nil {
			log.Errorf("Failed to remove qdisc from %s: %v", iface, err)
			return err
		}

		n, err := s.engine.FlushAddresses(iface)
		if err != nil {
			log.Errorf("Failed to flush addresses of %s: %v", iface, err)
			return err
		}
		log.Infof("Flushed %d address(es) from %s", n, iface)

		if _, err := s.engine.AddIngressQdisc(iface); err != nil {
			log.Errorf("Failed to add ingress qdisc to %s: %v", iface, err)
			return err
		}

		if err := s.engine.RedirectIngress(iface, peer); err != nil {
			log.Errorf("Failed to mirror %s to %s: %v", iface, peer, err)
			return err
		}

		if err := s.engine.SetIPv6(iface, false); err != nil {
			log.Warnf("Failed to disable IPv6 on %s: %v. Continuing...", iface, err)
		}

		if err := s.engine.SetPromisc(iface, true); err != nil {
			log.Errorf("Failed to enable promiscuous mode on %s: %v", iface, err)
			return err
		}
	}

	log.Infof("Tap %s <-> %s is active", a, b)
	return nil
}

// Stop reverts the pair.
//
// Per interface: remove qdisc, enable IPv6, disable promiscuous mode. Only a failure to
// scan links during qdisc removal is returned; everything else is logged. Flushed
// addresses are not restored.
func (s *TapService) Stop(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Infof("Stopping tap %s <-> %s", a, b)

	for _, p := range peers(a, b) {
		iface := p[0]
		log.Infof("----------------- Interface [%s] ------------------", iface)

		if _, err := s.engine.RemoveIngressQdisc(iface); err != nil {
			log.Errorf("Failed to remove qdisc from %s: %v", iface, err)
			return err
		}

		if err := s.engine.SetIPv6(iface, true); err != nil {
			log.Warnf("Failed to enable IPv6 on %s: %v. Continuing...", iface, err)
		}

		if err := s.engine.SetPromisc(iface, false); err != nil {
			log.Warnf("Failed to disable promiscuous mode on %s: %v. Continuing...", iface, err)
		}
	}

	log.Infof("Tap %s <-> %s is stopped. Addresses flushed by start are not restored", a, b)
	return nil
}

// Status returns one snapshot per interface, in pair order. The first error aborts; the
// snapshots collected before it are returned with the error.
func (s *TapService) Status(a, b string) ([]*networking.InterfaceStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]*networking.InterfaceStatus, 0, 2)
	for _, p := range peers(a, b) {
		status, err := s.engine.Status(p[0])
		if err != nil {
			return statuses, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Check compares the kernel state of the pair against an applied tap.
func (s *TapService) Check(a, b string) ([]networking.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Check(a, b)
}

// Links lists all interfaces.
func (s *TapService) Links() ([]networking.LinkSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Links()
}
