// Package resilience groups the optional reliability layers placed around
// inference endpoint calls: a circuit breaker and retry with exponential
// backoff. Both are off by default so a run fails fast on the first endpoint
// error; operators opt in through configuration.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.InferenceConfig("openai"))
//	err := retry.WithBackoff(ctx, retry.InferenceConfig(3, 2*time.Second, 10*time.Second), func() error {
//	    _, err := cb.Execute(func() (interface{}, error) {
//	        return backend.Complete(ctx, prompt)
//	    })
//	    return err
//	})
package resilience
