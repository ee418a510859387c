package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ClientsConnected.Set(3)
	m.ProxyIDsAssignedTotal.Add(7)
	m.HandshakeFailuresTotal.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	want := map[string]float64{
		"jdwp_proxy_clients_connected":        3,
		"jdwp_proxy_proxy_ids_assigned_total": 7,
		"jdwp_proxy_handshake_failures_total": 1,
	}
	got := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			got[mf.GetName()] = metricValue(metric)
		}
	}

	for name, expected := range want {
		v, ok := got[name]
		if !ok {
			t.Errorf("missing metric %s", name)
			continue
		}
		if v != expected {
			t.Errorf("%s = %v, want %v", name, v, expected)
		}
	}
}

func metricValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	if g := m.GetGauge(); g != nil {
		return g.GetValue()
	}
	return 0
}
