// Package main provides a load generator for the BMI service
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// stats aggregates results across workers
type stats struct {
	ok         atomic.Int64
	rejected   atomic.Int64
	errors     atomic.Int64
	latencySum atomic.Int64 // microseconds
	minLatency atomic.Int64
	maxLatency atomic.Int64
}

func (s *stats) observe(latency int64) {
	s.latencySum.Add(latency)
	for {
		old := s.minLatency.Load()
		if latency >= old || s.minLatency.CompareAndSwap(old, latency) {
			break
		}
	}
	for {
		old := s.maxLatency.Load()
		if latency <= old || s.maxLatency.CompareAndSwap(old, latency) {
			break
		}
	}
}

// measurementURL builds a /bmi query. With invalidRatio > 0 a share of
// requests carries out-of-range values to exercise the rejection path.
func measurementURL(base string, invalidRatio float64) string {
	weight := 40 + rand.Float64()*110
	height := 1.40 + rand.Float64()*0.6
	if rand.Float64() < invalidRatio {
		weight = -weight
	}
	q := url.Values{}
	q.Set("weight", strconv.FormatFloat(weight, 'f', 1, 64))
	q.Set("height", strconv.FormatFloat(height, 'f', 2, 64))
	return base + "?" + q.Encode()
}

func main() {
	target := flag.String("url", "http://localhost:8080/bmi", "Target /bmi URL")
	duration := flag.Duration("duration", 10*time.Second, "Test duration")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	invalid := flag.Float64("invalid", 0, "Share of requests with out-of-range input (0-1)")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification")
	flag.Parse()

	fmt.Printf("Benchmarking %s\n", *target)
	fmt.Printf("Duration: %v, Concurrency: %d, Invalid share: %.2f\n\n", *duration, *concurrency, *invalid)

	tr := &http.Transport{
		MaxIdleConns:        *concurrency * 2,
		MaxIdleConnsPerHost: *concurrency * 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if *insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	client := &http.Client{
		Transport: tr,
		Timeout:   5 * time.Second,
	}

	var (
		st   stats
		wg   sync.WaitGroup
		stop = make(chan struct{})
	)
	st.minLatency.Store(1<<63 - 1)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}

				start := time.Now()
				resp, err := client.Get(measurementURL(*target, *invalid))
				latency := time.Since(start).Microseconds()
				if err != nil {
					st.errors.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()

				switch resp.StatusCode {
				case http.StatusOK:
					st.ok.Add(1)
					st.observe(latency)
				case http.StatusBadRequest:
					st.rejected.Add(1)
					st.observe(latency)
				default:
					st.errors.Add(1)
				}
			}
		}()
	}

	ticker := time.NewTicker(time.Second)
	go func() {
		elapsed := 0
		for range ticker.C {
			elapsed++
			done := st.ok.Load() + st.rejected.Load()
			fmt.Printf("[%ds] Requests: %d, Rejected: %d, Errors: %d, RPS: %.0f\n",
				elapsed, done, st.rejected.Load(), st.errors.Load(), float64(done)/float64(elapsed))
		}
	}()

	time.Sleep(*duration)
	close(stop)
	ticker.Stop()
	wg.Wait()

	ok, rejected, errs := st.ok.Load(), st.rejected.Load(), st.errors.Load()
	total := ok + rejected

	avgLatency := float64(0)
	if total > 0 {
		avgLatency = float64(st.latencySum.Load()) / float64(total)
	}
	rps := float64(total) / duration.Seconds()

	fmt.Println("\n========== RESULTS ==========")
	fmt.Printf("Classified:      %d\n", ok)
	fmt.Printf("Rejected (400):  %d\n", rejected)
	fmt.Printf("Errors:          %d\n", errs)
	fmt.Printf("Duration:        %v\n", *duration)
	fmt.Printf("Concurrency:     %d\n", *concurrency)
	fmt.Println()
	fmt.Printf("RPS:             %.2f\n", rps)
	fmt.Printf("RPM:             %.0f\n", rps*60)
	fmt.Println()
	fmt.Printf("Latency avg:     %.2f µs (%.3f ms)\n", avgLatency, avgLatency/1000)
	if total > 0 {
		fmt.Printf("Latency min:     %d µs (%.3f ms)\n", st.minLatency.Load(), float64(st.minLatency.Load())/1000)
		fmt.Printf("Latency max:     %d µs (%.3f ms)\n", st.maxLatency.Load(), float64(st.maxLatency.Load())/1000)
	}

	if errs > 0 {
		os.Exit(1)
	}
}
