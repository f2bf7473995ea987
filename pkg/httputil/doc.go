// Package httputil retries operations that fail transiently.
//
// Callers decide what is transient by wrapping the error with [Retryable]:
// connection failures, timeouts and 5xx responses from the data service,
// or a cache server that is not up yet. Any other error ends the loop at
// once, so a 404 or a malformed body is never retried.
//
//	err := httputil.DefaultPolicy.Do(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// The error returned after the last attempt is the cause itself, not the
// [RetryableError] around it.
package httputil
