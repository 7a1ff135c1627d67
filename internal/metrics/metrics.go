package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	CPFValidations *prometheus.CounterVec
	DraftsCreated  prometheus.Counter
	FormsSubmitted prometheus.Counter
	CEPLookups     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CPFValidations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cadastro_cpf_validations_total",
			Help: "CPF validations by verdict",
		}, []string{"verdict"}),
		DraftsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "cadastro_drafts_created_total",
			Help: "Form drafts created",
		}),
		FormsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "cadastro_forms_submitted_total",
			Help: "Forms submitted after passing validation",
		}),
		CEPLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cadastro_cep_lookups_total",
			Help: "CEP lookups by source (cache or provider)",
		}, []string{"source"}),
	}
}

func (m *Metrics) ObserveCPF(valid bool) {
	if m == nil {
		return
	}
	verdict := "invalid"
	if valid {
		verdict = "valid"
	}
	m.CPFValidations.WithLabelValues(verdict).Inc()
}

func (m *Metrics) IncrementDraftsCreated() {
	if m == nil {
		return
	}
	m.DraftsCreated.Inc()
}

func (m *Metrics) IncrementFormsSubmitted() {
	if m == nil {
		return
	}
	m.FormsSubmitted.Inc()
}

func (m *Metrics) ObserveCEPLookup(source string) {
	if m == nil {
		return
	}
	m.CEPLookups.WithLabelValues(source).Inc()
}
