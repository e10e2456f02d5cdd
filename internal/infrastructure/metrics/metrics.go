package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	EventsTotal      *prometheus.CounterVec
	RoomsCreated     prometheus.Counter
	MessagesPosted   prometheus.Counter
	RosterBroadcasts prometheus.Counter
	ConnectedClients prometheus.Gauge
	LiveRooms        prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socketio_events_total",
			Help: "Inbound protocol events by type",
		}, []string{"event"}),
		RoomsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "socketio_rooms_created_total",
			Help: "Rooms created since start",
		}),
		MessagesPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "socketio_messages_posted_total",
			Help: "Messages appended to room logs",
		}),
		RosterBroadcasts: factory.NewCounter(prometheus.CounterOpts{
			Name: "socketio_roster_broadcasts_total",
			Help: "Roster fan-outs to connected clients",
		}),
		ConnectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "socketio_connected_clients",
			Help: "Currently connected websocket clients",
		}),
		LiveRooms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "socketio_live_rooms",
			Help: "Rooms currently held by the registry",
		}),
	}
}
