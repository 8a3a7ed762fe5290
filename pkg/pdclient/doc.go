// Package pdclient provides the primary entry point for constructing a
// Pipedrive API client that implements the pipedrive.Client interface.
//
// It resolves the endpoint from the configuration and wires the HTTP
// transport into the resource clients defined by the pipedrive package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/pipedrive-client/pkg/pdclient"
//	  "github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
//	)
//
//	func example() {
//	  cli, err := pdclient.NewWithToken("0123456789abcdef")
//	  if err != nil { log.Fatal(err) }
//
//	  deal, err := cli.Deals().Create(context.Background(), &pipedrive.DealCreateRequest{
//	    Title: "Website redesign",
//	    Value: pipedrive.Float(1500),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = deal
//	}
//
// Errors
//
// Non-2xx responses are *pipedrive.APIError values. Branch on the kind:
//
//	if pipedrive.IsNotFound(err) { /* ... */ }
//	if errors.Is(err, pipedrive.ErrRateLimited) { /* ... */ }
//
// Invalid arguments are reported as *pipedrive.ValidationError before any
// request is made.
package pdclient
