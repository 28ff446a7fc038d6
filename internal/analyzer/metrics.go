package analyzer

import (
	"github.com/pthm/dilint/internal/policy"
)

// Metrics counts what the analyzer inspected in a package
type Metrics struct {
	Files        int
	Sites        int
	Constructors int
	Reported     int

	// ExemptByReason counts exempt construction sites by exemption name.
	ExemptByReason map[string]int
}

func newMetrics() Metrics {
	return Metrics{ExemptByReason: make(map[string]int)}
}

func (m *Metrics) exempt(ex policy.Exemption) {
	if m.ExemptByReason == nil {
		m.ExemptByReason = make(map[string]int)
	}
	m.ExemptByReason[ex.String()]++
}

// Exempted returns the number of exempt construction sites
func (m *Metrics) Exempted() int {
	n := 0
	for _, c := range m.ExemptByReason {
		n += c
	}
	return n
}

// Add merges o into m
func (m *Metrics) Add(o Metrics) {
	m.Files += o.Files
	m.Sites += o.Sites
	m.Constructors += o.Constructors
	m.Reported += o.Reported
	for reason, c := range o.ExemptByReason {
		if m.ExemptByReason == nil {
			m.ExemptByReason = make(map[string]int)
		}
		m.ExemptByReason[reason] += c
	}
}
