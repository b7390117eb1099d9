package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
	if cb.IsOpen() {
		t.Error("expected closed breaker")
	}
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "Company: None", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "Company: None" {
		t.Errorf("unexpected result %v", result)
	}
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := New(testConfig())
	endpointErr := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, endpointErr
		})
		if !errors.Is(err, endpointErr) {
			t.Fatalf("attempt %d: expected endpoint error, got %v", i+1, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected open breaker, got %v", cb.State())
	}

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return "unused", nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if called {
		t.Error("function must not run while the breaker is open")
	}
}

func TestCircuitBreaker_BelowMinRequestsStaysClosed(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("boom")
		})
	}

	if cb.IsOpen() {
		t.Error("breaker must stay closed below MinRequests")
	}
}

func TestInferenceConfig(t *testing.T) {
	cfg := InferenceConfig("openai")

	if cfg.Name != "openai-api" {
		t.Errorf("expected name='openai-api', got %q", cfg.Name)
	}
	if cfg.FailureThreshold != 0.6 || cfg.MinRequests != 5 {
		t.Errorf("unexpected thresholds: %+v", cfg)
	}
}
