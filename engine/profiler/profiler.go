//go:build profile

// Package profiler records nested scope timings into a fixed ring and
// exports them as a speedscope "evented" profile. Built only with the
// profile tag; without it every call compiles to a no-op.
package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Init sizes the span ring. Call once at startup; capacity is the
// number of open/close events retained before old ones are overwritten.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start opens a named scope and returns the close func to defer:
//
//	defer profiler.Start("ui.frame")()
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := intern(name)
	opened := time.Now().UnixNano()
	ring.push(event{at: opened, frame: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < opened {
			end = opened
		}
		ring.push(event{at: end, frame: id})
	}
}

// OpenGraph writes the captured events to a speedscope file under the
// temp directory and launches the speedscope viewer on it. Launching is
// best-effort; the file path is returned either way.
func OpenGraph() (string, error) {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return "", fmt.Errorf("profiler: no events captured")
	}

	path := filepath.Join(os.TempDir(), "loom.profile.speedscope.json")
	if err := writeSpeedscope(evs, path); err != nil {
		return "", err
	}

	cmd := exec.Command("speedscope", path)
	hideConsole(cmd)
	_ = cmd.Start()
	return path, nil
}

type event struct {
	at    int64
	frame int
	open  bool
}

type eventRing struct {
	ready atomic.Bool
	size  uint64
	write atomic.Uint64
	evs   []event
}

func (r *eventRing) init(capacity int) {
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns the retained events in write order, oldest first.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

var ring eventRing

// Scope names are interned so ring entries carry an int, not a string.
var (
	namesMu sync.Mutex
	names   []string
	nameIDs = map[string]int{}
)

func intern(name string) int {
	namesMu.Lock()
	defer namesMu.Unlock()
	if id, ok := nameIDs[name]; ok {
		return id
	}
	id := len(names)
	nameIDs[name] = id
	names = append(names, name)
	return id
}

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex,omitempty"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" opens a frame, "C" closes it
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

func writeSpeedscope(evs []event, path string) error {
	namesMu.Lock()
	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}
	namesMu.Unlock()

	base := evs[0].at
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	lastUS := int64(-1)
	endUS := int64(0)

	for _, e := range evs {
		atUS := (e.at - base) / 1000
		if atUS < lastUS {
			atUS = lastUS // µs timestamps must not run backwards
		}
		if e.open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			// A ring overwrite can orphan closes; drop them.
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.frame})
		}
		lastUS = atUS
		if atUS > endUS {
			endUS = atUS
		}
	}

	// Speedscope expects balanced events; close anything still open, LIFO.
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	if len(out) == 0 {
		return fmt.Errorf("profiler: no balanced events")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:       "evented",
			Name:       "frame capture",
			Unit:       "microseconds",
			StartValue: 0,
			EndValue:   endUS,
			Events:     out,
		}},
		Exporter: "loom-profiler",
		Name:     "loom capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
