// Package httputil provides retry helpers for talking to the issue tracker.
//
// [Retry] re-runs an operation with exponential backoff, but only when the
// failure is wrapped in [RetryableError]. The tracker client wraps transport
// failures (connection refused, timeouts, truncated bodies) this way; HTTP
// status failures are returned unwrapped so they abort the run at once.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Transient(err)
//	    }
//	    ...
//	})
package httputil
