package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"contact-mailer/internal/logging"
)

type submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Language string `json:"language"`
}

type reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func main() {
	count := flag.Int("count", 20, "Total number of submissions to send")
	concurrency := flag.Int("concurrency", 4, "Number of concurrent workers")
	email := flag.String("email", "loadtest@example.com", "Submitter email address used in the test")
	language := flag.String("language", "en", "Language code sent with each submission (en or es)")
	apiURL := flag.String("url", "http://localhost:8080/contact", "URL of the contact endpoint")
	flag.Parse()

	logger := logging.NewWriter(os.Stdout, logging.LevelInfo)
	logger.Info("Starting load test: %d submissions with %d concurrent workers to %s", *count, *concurrency, *apiURL)

	jobs := make(chan submission, *count)
	results := make(chan bool, *count)
	var wg sync.WaitGroup

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go worker(i+1, *apiURL, logger, jobs, results, &wg)
	}

	startTime := time.Now()
	for i := 0; i < *count; i++ {
		jobs <- submission{
			Name:     fmt.Sprintf("Load Test %d/%d", i+1, *count),
			Email:    *email,
			Message:  fmt.Sprintf("Automatically generated contact submission at %s", time.Now().UTC().Format(time.RFC3339)),
			Language: *language,
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	duration := time.Since(startTime)
	successCount := 0
	for r := range results {
		if r {
			successCount++
		}
	}

	logger.Info("----------- Load Test Complete -----------")
	logger.Info("Total Requests: %d", *count)
	logger.Info("Successful:     %d", successCount)
	logger.Info("Failed:         %d", *count-successCount)
	logger.Info("Duration:       %.2f seconds", duration.Seconds())
	logger.Info("RPS:            %.2f", float64(*count)/duration.Seconds())

	if successCount != *count {
		os.Exit(1)
	}
}

func worker(id int, apiURL string, logger *logging.Logger, jobs <-chan submission, results chan<- bool, wg *sync.WaitGroup) {
	defer wg.Done()
	client := &http.Client{Timeout: 30 * time.Second}
	for job := range jobs {
		if err := submit(client, apiURL, job); err != nil {
			logger.Error("Worker %d: %v", id, err)
			results <- false
			continue
		}
		logger.Info("Worker %d: submission %q accepted", id, job.Name)
		results <- true
	}
}

func submit(client *http.Client, apiURL string, job submission) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var r reply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("status %s with undecodable body: %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || !r.Success {
		return fmt.Errorf("API returned %s: %s", resp.Status, r.Message)
	}
	return nil
}
