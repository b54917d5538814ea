// Package rest is a small, immutable client for talking to REST APIs on
// top of net/http.
//
// A Client is built once with functional options and is safe for use by
// concurrent goroutines; per-call settings travel in an immutable Options
// value:
//
//	client, err := rest.New(
//	    rest.WithBaseURL("https://api.example.com"),
//	    rest.WithDefaultHeader("Accept", "application/json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, _ := rest.NewOptions(
//	    rest.QueryParam("page", "1"),
//	    rest.QueryParam("sort", "name"),
//	)
//
//	resp, err := client.Get(context.Background(), "/users", opts)
//
// A non-2xx status is not an error: the caller inspects the returned
// Response. Errors are reserved for invalid arguments, URI construction
// failures, and transport failures.
package rest
