// Command saferoute-feedsim publishes synthetic incident events on an NNG
// PUB socket, for exercising a saferoute-server incident feed subscriber.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.nanomsg.org/mangos/v3/protocol/pub"

	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/zones"
)

var threatLevels = []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}

func main() {
	bind := flag.String("bind", "tcp://127.0.0.1:5555", "Address to publish incidents on")
	topic := flag.String("topic", "incidents", "Feed topic")
	interval := flag.Duration("interval", 2*time.Second, "Delay between incidents")
	count := flag.Int("count", 0, "Number of incidents to publish (0 = until interrupted)")
	lat := flag.Float64("lat", 50.45, "Center latitude for generated incidents")
	lng := flag.Float64("lng", 30.52, "Center longitude for generated incidents")
	spreadKm := flag.Float64("spread-km", 10, "Max distance of incidents from the center")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stdout, logging.InfoLevel).
		With(logging.Component("feedsim"))

	sock, err := pub.NewSocket()
	if err != nil {
		logger.Error("creating PUB socket failed", logging.Error(err))
		os.Exit(1)
	}
	defer sock.Close()

	if err := sock.Listen(*bind); err != nil {
		logger.Error("listen failed", logging.String("bind", *bind), logging.Error(err))
		os.Exit(1)
	}
	logger.Info("publishing incidents",
		logging.String("bind", *bind),
		logging.String("topic", *topic),
		logging.Duration("interval", *interval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	prefix := []byte(*topic + ":")
	published := 0
	for {
		select {
		case <-sigCh:
			logger.Info("stopping", logging.Count(published))
			return
		case <-ticker.C:
			inc := randomIncident(*lat, *lng, *spreadKm)
			payload, err := json.Marshal(inc)
			if err != nil {
				logger.Error("marshaling incident failed", logging.Error(err))
				continue
			}
			if err := sock.Send(append(prefix, payload...)); err != nil {
				logger.Warn("publish failed", logging.Error(err))
				continue
			}
			published++
			logger.Info("incident published",
				logging.IncidentID(inc.ID),
				logging.Severity(inc.ThreatLevel),
				logging.String("position", fmt.Sprintf("%.5f,%.5f", inc.Latitude, inc.Longitude)))

			if *count > 0 && published >= *count {
				logger.Info("done", logging.Count(published))
				return
			}
		}
	}
}

// randomIncident scatters incidents uniformly within spreadKm of the center.
// 1 degree of latitude is ~111 km; longitude shrinks with cos(lat), which is
// close enough for a traffic generator.
func randomIncident(lat, lng, spreadKm float64) zones.Incident {
	spreadDeg := spreadKm / 111.0
	return zones.Incident{
		ID:          uuid.NewString(),
		Latitude:    lat + (rand.Float64()*2-1)*spreadDeg,
		Longitude:   lng + (rand.Float64()*2-1)*spreadDeg,
		ThreatLevel: threatLevels[rand.Intn(len(threatLevels))],
		Timestamp:   time.Now().UTC(),
	}
}
