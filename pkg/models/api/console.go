package api

import "time"

// DomainStatus reports one domain's fetch outcome for a cycle.
type DomainStatus struct {
	Domain  string `json:"domain"`
	OK      bool   `json:"ok"`
	Records int    `json:"records"`
}

// Metric is one KPI on the dashboard payload. Value is null when the
// metric could not be computed.
type Metric struct {
	Name      string   `json:"name"`
	Value     *float64 `json:"value"`
	Unit      string   `json:"unit,omitempty"`
	Available bool     `json:"available"`
}

type Alert struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
	Domain   string `json:"domain,omitempty"`
	Source   string `json:"source"`
}

// Dashboard is the metrics/alerts payload consumed by the dashboard view.
type Dashboard struct {
	CycleID     string         `json:"cycle_id"`
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	GeneratedAt time.Time      `json:"generated_at"`
	Domains     []DomainStatus `json:"domains"`
	Metrics     []Metric       `json:"metrics"`
	Alerts      []Alert        `json:"alerts"`
}

type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hint  string `json:"hint,omitempty"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type Section struct {
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	Unavailable bool   `json:"unavailable,omitempty"`
	Note        string `json:"note,omitempty"`
	Cards       []Card `json:"cards,omitempty"`
	Table       *Table `json:"table,omitempty"`
	Narrative   string `json:"narrative,omitempty"`
}

// Report is a composed report document as served to the reports view.
type Report struct {
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	SchemaVersion int       `json:"schema_version"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	GeneratedAt   time.Time `json:"generated_at"`
	Sections      []Section `json:"sections"`
}

// ReportTypeInfo describes one available report type.
type ReportTypeInfo struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}
