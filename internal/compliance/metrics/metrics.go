// Package metrics exposes Prometheus counters for the company store and the
// document renderer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store counts store activity. A nil *Store is valid and records nothing.
type Store struct {
	mutations       *prometheus.CounterVec
	persistFailures prometheus.Counter
	notFound        *prometheus.CounterVec
	renders         *prometheus.CounterVec

	registerOnce sync.Once
}

// NewStore returns unregistered metrics; call Register to publish them.
func NewStore() *Store {
	return &Store{}
}

// Register creates the collectors on registry. It is idempotent and a nil
// registry is a no-op.
func (m *Store) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}
	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.mutations = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corpsec_store_mutations_total",
			Help: "Total number of committed store mutations",
		}, []string{"operation"})

		m.persistFailures = factory.NewCounter(prometheus.CounterOpts{
			Name: "corpsec_store_persist_failures_total",
			Help: "Total number of snapshot writes that failed",
		})

		m.notFound = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corpsec_store_not_found_total",
			Help: "Total number of update or remove calls for unknown identities",
		}, []string{"operation"})

		m.renders = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "corpsec_documents_rendered_total",
			Help: "Total number of documents rendered by kind",
		}, []string{"kind"})
	})
}

// IncMutation records a committed mutation.
func (m *Store) IncMutation(operation string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(operation).Inc()
}

// IncPersistFailure records a failed snapshot write.
func (m *Store) IncPersistFailure() {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.Inc()
}

// IncNotFound records an update or remove against an unknown identity.
func (m *Store) IncNotFound(operation string) {
	if m == nil || m.notFound == nil {
		return
	}
	m.notFound.WithLabelValues(operation).Inc()
}

// IncRender records a rendered document.
func (m *Store) IncRender(kind string) {
	if m == nil || m.renders == nil {
		return
	}
	m.renders.WithLabelValues(kind).Inc()
}
