// Package feed subscribes to the external incident stream and applies
// incidents to the engine as threat zones.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/safesphere/saferoute/pkg/engine"
	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/metrics"
	"github.com/safesphere/saferoute/pkg/zones"
)

// Subscriber consumes incident events from a publisher over an NNG SUB
// socket. Messages are topic-prefixed: "<topic>:" followed by the incident
// JSON payload.
type Subscriber struct {
	url     string
	topic   string
	eng     *engine.Engine
	logger  logging.Logger
	metrics *metrics.Registry

	socket    mangos.Socket
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	runningMu sync.Mutex
}

// NewSubscriber creates a subscriber for the given feed address and topic.
func NewSubscriber(url, topic string, eng *engine.Engine, logger logging.Logger, reg *metrics.Registry) *Subscriber {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Subscriber{
		url:     url,
		topic:   topic,
		eng:     eng,
		logger:  logger.With(logging.Component("feed")),
		metrics: reg,
		stopCh:  make(chan struct{}),
	}
}

// Start connects to the publisher and begins consuming incidents.
func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return fmt.Errorf("feed subscriber already running")
	}

	sock, err := sub.NewSocket()
	if err != nil {
		return fmt.Errorf("failed to create SUB socket: %w", err)
	}

	if err := sock.Dial(s.url); err != nil {
		sock.Close()
		return fmt.Errorf("failed to connect to incident feed at %s: %w", s.url, err)
	}

	// NNG SUB uses prefix matching on the message bytes
	prefix := []byte(s.topic + ":")
	if err := sock.SetOption(mangos.OptionSubscribe, prefix); err != nil {
		sock.Close()
		return fmt.Errorf("failed to subscribe to topic %s: %w", s.topic, err)
	}

	s.socket = sock
	s.running = true
	s.logger.Info("incident feed connected",
		logging.String("url", s.url),
		logging.String("topic", s.topic))

	s.wg.Add(1)
	go s.receive(prefix)

	return nil
}

// Stop closes the socket and waits for the receive loop to finish.
func (s *Subscriber) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil
	}

	close(s.stopCh)
	s.running = false

	if s.socket != nil {
		if err := s.socket.Close(); err != nil {
			s.logger.Warn("failed to close feed socket", logging.Error(err))
		}
	}

	s.wg.Wait()
	s.logger.Info("incident feed stopped")
	return nil
}

func (s *Subscriber) receive(prefix []byte) {
	defer s.wg.Done()

	for {
		msg, err := s.socket.Recv()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
			}
			s.logger.Warn("feed receive failed", logging.Error(err))
			if s.metrics != nil {
				s.metrics.RecordFeedError()
			}
			continue
		}
		s.handleMessage(bytes.TrimPrefix(msg, prefix))
	}
}

func (s *Subscriber) handleMessage(payload []byte) {
	var inc zones.Incident
	if err := json.Unmarshal(payload, &inc); err != nil {
		s.logger.Warn("malformed incident payload", logging.Error(err))
		if s.metrics != nil {
			s.metrics.RecordFeedError()
		}
		return
	}
	if inc.Timestamp.IsZero() {
		inc.Timestamp = time.Now().UTC()
	}

	if _, err := s.eng.ApplyIncident(inc); err != nil {
		s.logger.Warn("incident not applied",
			logging.IncidentID(inc.ID),
			logging.Error(err))
		if s.metrics != nil {
			s.metrics.RecordFeedError()
		}
	}
}
