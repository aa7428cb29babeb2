package stats

import (
	"logsreact/internal/types"
	"sort"
	"sync"
)

// MaxTrackedIPs bounds the per-client table so a hostile log cannot grow it without limit
const MaxTrackedIPs = 5000

// ClientCount is one row of the top-clients table
type ClientCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// Snapshot is a point-in-time copy of a Tally
type Snapshot struct {
	Total      int            `json:"total"`
	Matched    int            `json:"matched"`
	Unmatched  int            `json:"unmatched"`
	ByStatus   map[string]int `json:"by_status"` // 2xx, 3xx, 4xx, 5xx, other
	TopClients []ClientCount  `json:"top_clients"`
}

// Tally accumulates counts over parsed records
type Tally struct {
	mu        sync.Mutex
	matched   int
	unmatched int
	byStatus  map[string]int
	clients   map[string]int
	top       int
}

// NewTally creates a tally reporting at most top clients in snapshots
func NewTally(top int) *Tally {
	return &Tally{
		byStatus: make(map[string]int),
		clients:  make(map[string]int),
		top:      top,
	}
}

// Add records one parsed record
func (t *Tally) Add(rec types.ParsedRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !rec.Matched {
		t.unmatched++
		return
	}
	t.matched++
	t.byStatus[StatusClass(rec.StatusCode)]++

	if _, exists := t.clients[rec.ClientIP]; !exists && len(t.clients) >= MaxTrackedIPs {
		t.evictLowest()
	}
	t.clients[rec.ClientIP]++
}

// AddAll records every record of a result
func (t *Tally) AddAll(records []types.ParsedRecord) {
	for _, rec := range records {
		t.Add(rec)
	}
}

// Snapshot returns a copy of the current counts
func (t *Tally) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Total:     t.matched + t.unmatched,
		Matched:   t.matched,
		Unmatched: t.unmatched,
		ByStatus:  make(map[string]int, len(t.byStatus)),
	}
	for k, v := range t.byStatus {
		s.ByStatus[k] = v
	}

	clients := make([]ClientCount, 0, len(t.clients))
	for ip, n := range t.clients {
		clients = append(clients, ClientCount{IP: ip, Count: n})
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Count != clients[j].Count {
			return clients[i].Count > clients[j].Count
		}
		return clients[i].IP < clients[j].IP
	})
	if t.top >= 0 && len(clients) > t.top {
		clients = clients[:t.top]
	}
	s.TopClients = clients

	return s
}

// StatusClass buckets a status code string into 2xx..5xx or other
func StatusClass(code string) string {
	if len(code) != 3 {
		return "other"
	}
	switch code[0] {
	case '2', '3', '4', '5':
		return code[:1] + "xx"
	default:
		return "other"
	}
}

// evictLowest drops the client with the fewest hits.
// Caller must hold lock.
func (t *Tally) evictLowest() {
	var victim string
	lowest := -1
	for ip, n := range t.clients {
		if lowest == -1 || n < lowest || (n == lowest && ip < victim) {
			victim, lowest = ip, n
		}
	}
	if lowest != -1 {
		delete(t.clients, victim)
	}
}
