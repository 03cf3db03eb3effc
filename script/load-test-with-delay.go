package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// transactionRequest is the body of the deposit, withdraw and invest endpoints
type transactionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

type result struct {
	scenario     string
	account      int
	statusCode   int
	responseTime time.Duration
	err          error
}

// scenario is one request shape fired at the API
type scenario struct {
	name   string
	path   string
	amount string
}

type stats struct {
	mu            sync.Mutex
	total         int
	succeeded     int
	failed        int
	responseTimes []time.Duration
	byStatus      map[int]int
	byScenario    map[string]int
	byAccount     map[int]int
	errors        map[string]int
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent workers")
	totalRequests := flag.Int("n", 100, "Total number of requests")
	tokensFlag := flag.String("tokens", "", "Comma-separated bearer tokens, one per account (or RP_LOAD_TOKENS)")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	delayMs := flag.Int("delay", 100, "Delay between requests of one worker in milliseconds")
	flag.Parse()

	raw := *tokensFlag
	if raw == "" {
		raw = os.Getenv("RP_LOAD_TOKENS")
	}
	var tokens []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		fmt.Fprintln(os.Stderr, "at least one bearer token is required, log in with POST /api/auth/login first")
		os.Exit(2)
	}

	scenarios := []scenario{
		{"deposit-small", "/api/transactions/deposit", "10.00"},
		{"deposit-large", "/api/transactions/deposit", "250.00"},
		{"withdraw", "/api/transactions/withdraw", "15.00"},
		{"invest", "/api/transactions/invest", "5.00"},
	}

	fmt.Printf("Load testing %s with %d accounts, %d workers, %d requests, %d ms delay\n",
		*baseURL, len(tokens), *concurrency, *totalRequests, *delayMs)

	s := &stats{
		total:      *totalRequests,
		byStatus:   make(map[int]int),
		byScenario: make(map[string]int),
		byAccount:  make(map[int]int),
		errors:     make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	results := make(chan result, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, time.Duration(*delayMs)*time.Millisecond, tokens, scenarios, jobs, results)
		}()
	}

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range results {
			s.record(r)
		}
	}()

	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			s.mu.Lock()
			done := s.succeeded + s.failed
			s.mu.Unlock()
			fmt.Printf("Progress: %d/%d\n", done, s.total)
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	s.print(time.Since(start))
}

func worker(baseURL string, delay time.Duration, tokens []string, scenarios []scenario, jobs <-chan int, results chan<- result) {
	client := &http.Client{Timeout: 10 * time.Second}

	for jobID := range jobs {
		if delay > 0 {
			time.Sleep(delay)
		}

		account := rand.Intn(len(tokens))
		sc := scenarios[rand.Intn(len(scenarios))]
		r := result{scenario: sc.name, account: account}

		body, _ := json.Marshal(transactionRequest{
			Amount:      sc.amount,
			Description: fmt.Sprintf("load test %d", jobID),
		})
		req, err := http.NewRequest(http.MethodPost, baseURL+sc.path, bytes.NewReader(body))
		if err != nil {
			r.err = err
			results <- r
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tokens[account])

		began := time.Now()
		resp, err := client.Do(req)
		r.responseTime = time.Since(began)
		if err != nil {
			r.err = err
		} else {
			r.statusCode = resp.StatusCode
			_ = resp.Body.Close()
		}
		results <- r
	}
}

func (s *stats) record(r result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byScenario[r.scenario]++
	s.byAccount[r.account]++
	switch {
	case r.err != nil:
		s.failed++
		s.errors[r.err.Error()]++
		return
	case r.statusCode >= 200 && r.statusCode < 300:
		s.succeeded++
	default:
		// 400 for insufficient balance or limits is expected under random load
		s.failed++
	}
	s.byStatus[r.statusCode]++
	s.responseTimes = append(s.responseTimes, r.responseTime)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[min(len(sorted)*p/100, len(sorted)-1)]
}

func (s *stats) print(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := slices.Clone(s.responseTimes)
	slices.Sort(sorted)
	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = sum / time.Duration(len(sorted))
	}

	fmt.Println("\n================= RESULTS =================")
	fmt.Printf("Requests:    %d (%d succeeded, %d failed)\n", s.total, s.succeeded, s.failed)
	fmt.Printf("Elapsed:     %.2fs\n", elapsed.Seconds())
	fmt.Printf("Throughput:  %.2f req/s\n", float64(s.total)/elapsed.Seconds())

	fmt.Println("\n--------------- RESPONSE TIMES ---------------")
	fmt.Printf("Average: %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Min:     %v\n", sorted[0])
		fmt.Printf("Max:     %v\n", sorted[len(sorted)-1])
	}
	for _, p := range []int{50, 90, 95, 99} {
		fmt.Printf("P%d:     %v\n", p, percentile(sorted, p))
	}

	fmt.Println("\n--------------- STATUS CODES ---------------")
	for code, count := range s.byStatus {
		fmt.Printf("%d: %d\n", code, count)
	}

	fmt.Println("\n--------------- SCENARIOS ---------------")
	for name, count := range s.byScenario {
		fmt.Printf("%-14s %d\n", name, count)
	}

	fmt.Println("\n--------------- ACCOUNTS ---------------")
	for account, count := range s.byAccount {
		fmt.Printf("token #%d: %d\n", account, count)
	}

	if len(s.errors) > 0 {
		fmt.Println("\n--------------- TRANSPORT ERRORS ---------------")
		for msg, count := range s.errors {
			fmt.Printf("%-50s %d\n", msg, count)
		}
	}
}
