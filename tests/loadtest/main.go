package main

import (
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
	flag "github.com/spf13/pflag"
	"go.uber.org/atomic"
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:8090", "daemon base URL")
	numWorkers   = flag.Int("workers", 20, "concurrent workers")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
	numPets      = flag.Int("pets", 10, "pets created before the run")
)

var categories = []string{"feeding", "walking", "grooming", "medication", "play"}

var client *resty.Client

func newClient(base string) *resty.Client {
	return resty.New().
		SetBaseURL(base).
		SetTimeout(5*time.Second).
		SetTransport(&http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 200,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		}).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Content-Type", "application/json")
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	flag.Parse()
	client = newClient(*baseURL)

	fmt.Println("=== petcare load test ===")
	fmt.Printf("Workers: %d | Duration: %s | Pets: %d\n\n", *numWorkers, *testDuration, *numPets)

	fmt.Print("Waiting for daemon... ")
	for i := 0; i < 30; i++ {
		if _, err := client.R().Get("/health"); err == nil {
			break
		}
		if i == 29 {
			fmt.Println("FAILED: daemon not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	petIDs := make([]string, 0, *numPets)
	run := time.Now().UnixNano()
	for i := 0; i < *numPets; i++ {
		id := fmt.Sprintf("load-%d-%d", run, i)
		r := post("/pets", "POST /pets", map[string]any{"id": id, "name": fmt.Sprintf("Pet %d", i), "species": "dog"})
		if r.err {
			fmt.Printf("FAILED: could not create pet %s (status %d)\n", id, r.status)
			return
		}
		petIDs = append(petIDs, id)
	}

	fmt.Println("\n--- Phase 1: task writes ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		return doAddTask(rng, petIDs)
	})

	fmt.Println("\n--- Phase 2: mixed (30% write, 70% read) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doAddTask(rng, petIDs)
		case r < 0.30:
			return doUpdatePet(rng, petIDs)
		case r < 0.55:
			return get("/dashboard", "GET /dashboard")
		case r < 0.75:
			return get("/tasks?date=today", "GET /tasks")
		case r < 0.90:
			return get("/pet/upcoming?id="+petIDs[rng.Intn(len(petIDs))], "GET /pet/upcoming")
		default:
			return get("/schedule", "GET /schedule")
		}
	})

	for _, id := range petIDs {
		post("/pet/delete?id="+id, "POST /pet/delete", nil)
	}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	totalOps := atomic.NewInt64(0)
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Inc()
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func doAddTask(rng *rand.Rand, petIDs []string) result {
	date := time.Now().AddDate(0, 0, rng.Intn(14)-3).Format("2006-01-02")
	body := map[string]any{
		"petId":     petIDs[rng.Intn(len(petIDs))],
		"title":     "Load task",
		"category":  categories[rng.Intn(len(categories))],
		"frequency": "once",
		"date":      date,
		"time":      fmt.Sprintf("%02d:%02d", rng.Intn(24), rng.Intn(60)),
	}
	return post("/tasks", "POST /tasks", body)
}

func doUpdatePet(rng *rand.Rand, petIDs []string) result {
	id := petIDs[rng.Intn(len(petIDs))]
	body := map[string]any{"weight": 5 + rng.Float64()*30, "weightUnit": "kg"}
	return post("/pet/update?id="+id, "POST /pet/update", body)
}

func post(path, endpoint string, body any) result {
	req := client.R()
	if body != nil {
		req.SetBody(body)
	}
	start := time.Now()
	resp, err := req.Post(path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	return result{endpoint, resp.StatusCode(), lat, resp.StatusCode() >= 300}
}

func get(path, endpoint string) result {
	start := time.Now()
	resp, err := client.R().Get(path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	return result{endpoint, resp.StatusCode(), lat, resp.StatusCode() != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
