// ════════════════════════════════════════════════════════════════════════════════════════════════
// Interning Dictionary Stress Driver
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Load Generator & Throughput Reporter
//
// Description:
//   Thin external collaborator: generates random short strings from GOMAXPROCS goroutines, interns
//   them against a shared Dictionary, and periodically logs a throughput snapshot. Stays outside the
//   hard core the way the teacher's own main.go stays a thin orchestration layer over syncharvester
//   and router — all the interning logic itself lives in the intern package.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"database/sql"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sugawarayuuta/sonnet"

	"github.com/kestrelsys/intern"
	"github.com/kestrelsys/intern/debug"
	"github.com/kestrelsys/intern/diag"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// FLAGS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

var (
	flagDuration   = flag.Duration("duration", 10*time.Second, "how long to run the load generator")
	flagKeySpace   = flag.Int("keyspace", 50000, "number of distinct random strings each worker cycles through")
	flagMinLen     = flag.Int("minlen", 4, "minimum generated string length")
	flagMaxLen     = flag.Int("maxlen", 24, "maximum generated string length")
	flagSampleEach = flag.Duration("sample-every", time.Second, "throughput sample interval")
	flagSQLitePath = flag.String("sqlite", "", "if set, append throughput samples to this SQLite database")
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SAMPLE RECORD
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// sample is one periodic throughput observation, JSON-encoded for stderr
// logging and optionally persisted to SQLite.
type sample struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Lookups        uint64  `json:"lookups"`
	Hits           uint64  `json:"hits"`
	Inserts        uint64  `json:"inserts"`
	GrowthEvents   uint64  `json:"growth_events"`
	InternsPerSec  float64 `json:"interns_per_sec"`
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MAIN ORCHESTRATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func main() {
	flag.Parse()
	debug.DropMessage("INIT", "starting interning stress driver")

	var db *sql.DB
	if *flagSQLitePath != "" {
		var err error
		db, err = openSampleDatabase(*flagSQLitePath)
		if err != nil {
			debug.DropError("SQLITE_OPEN", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	recorder := &diag.Recorder{}
	dict := intern.New().WithRecorder(recorder)

	workers := runtime.GOMAXPROCS(0)
	debug.DropMessage("WORKERS", itoa(workers))

	stop := make(chan struct{})
	setupSignalHandling(stop)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go runWorker(&wg, dict, stop, i)
	}

	reportLoop(recorder, db, stop, *flagDuration, *flagSampleEach)

	closeOnce(stop)
	wg.Wait()

	debug.DropMessage("DONE", "stress run complete")
}

// runWorker repeatedly interns random strings drawn from a fixed
// per-worker keyspace until stop is closed, so distinct workers converge
// on shared handles and exercise the dictionary's dedup path under
// contention.
func runWorker(wg *sync.WaitGroup, dict *intern.Dictionary, stop <-chan struct{}, seed int) {
	defer wg.Done()
	rnd := rand.New(rand.NewSource(int64(seed) + time.Now().UnixNano()))
	scratch := make([]byte, *flagMaxLen)

	for {
		select {
		case <-stop:
			return
		default:
		}
		key := rnd.Intn(*flagKeySpace)
		n := randomString(scratch, key)
		if _, err := dict.Intern(scratch[:n]); err != nil {
			debug.DropError("INTERN", err)
		}
	}
}

// randomString fills scratch deterministically from key (so repeated
// keys reliably produce repeated content) plus a length drawn from the
// configured range, and returns the number of bytes written.
func randomString(scratch []byte, key int) int {
	length := *flagMinLen
	if *flagMaxLen > *flagMinLen {
		length += key % (*flagMaxLen - *flagMinLen + 1)
	}
	r := rand.New(rand.NewSource(int64(key)))
	for i := 0; i < length; i++ {
		scratch[i] = byte('a' + r.Intn(26))
	}
	return length
}

// reportLoop samples recorder on flagSampleEach and logs/persists a
// throughput snapshot, returning once duration has elapsed.
func reportLoop(recorder *diag.Recorder, db *sql.DB, stop chan struct{}, duration, every time.Duration) {
	start := time.Now()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	deadline := time.After(duration)

	var lastInserts uint64
	for {
		select {
		case <-deadline:
			return
		case <-stop:
			return
		case now := <-ticker.C:
			snap := recorder.Snapshot()
			elapsed := now.Sub(start).Seconds()
			rate := float64(0)
			if every.Seconds() > 0 {
				rate = float64(snap.Inserts-lastInserts) / every.Seconds()
			}
			lastInserts = snap.Inserts

			s := sample{
				ElapsedSeconds: elapsed,
				Lookups:        snap.Lookups,
				Hits:           snap.Hits,
				Inserts:        snap.Inserts,
				GrowthEvents:   snap.GrowthEvents,
				InternsPerSec:  rate,
			}
			logSample(s)
			if db != nil {
				if err := persistSample(db, s); err != nil {
					debug.DropError("SQLITE_INSERT", err)
				}
			}
		}
	}
}

// logSample encodes s with sonnet's drop-in json.Marshal replacement and
// writes it to stderr through the same diagnostic path as every other
// cold-path log line.
func logSample(s sample) {
	b, err := sonnet.Marshal(s)
	if err != nil {
		debug.DropError("MARSHAL", err)
		return
	}
	debug.DropMessage("SAMPLE", string(b))
}

// openSampleDatabase opens (creating if necessary) a SQLite database and
// ensures the throughput-sample history table exists. This persists
// diagnostic samples only — never dictionary contents.
func openSampleDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	const schema = `CREATE TABLE IF NOT EXISTS throughput_samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		elapsed_seconds REAL,
		lookups INTEGER,
		hits INTEGER,
		inserts INTEGER,
		growth_events INTEGER,
		interns_per_sec REAL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func persistSample(db *sql.DB, s sample) error {
	_, err := db.Exec(
		`INSERT INTO throughput_samples (elapsed_seconds, lookups, hits, inserts, growth_events, interns_per_sec) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ElapsedSeconds, s.Lookups, s.Hits, s.Inserts, s.GrowthEvents, s.InternsPerSec,
	)
	return err
}

// setupSignalHandling closes stop on SIGINT/SIGTERM so a long-running
// stress invocation can be cut short cleanly.
func setupSignalHandling(stop chan struct{}) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		debug.DropMessage("SIGNAL", "shutting down")
		closeOnce(stop)
	}()
}

var stopClosed int32

func closeOnce(stop chan struct{}) {
	if atomic.CompareAndSwapInt32(&stopClosed, 0, 1) {
		close(stop)
	}
}

// itoa avoids pulling in fmt for a single integer-to-string conversion
// in the diagnostic path, matching the teacher's zero-alloc logging
// discipline.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
