// Package canvasclient provides the primary entry point for constructing a
// Canvas LMS API client that implements the canvas.Client interface.
//
// It normalizes the base URL, picks a token source and wires the HTTP
// transport on top of the resource interfaces and types defined in the canvas
// package. Construction never performs network I/O; the first request does.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/canvas-client/pkg/canvas"
//	  "github.com/fivetwenty-io/canvas-client/pkg/canvasclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With a token you already have:
//	  cli, err := canvasclient.NewWithToken("school.instructure.com", "1~abc...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or reading $HOME/.canvas/.canvastoken on every request:
//	  cli, err = canvasclient.New(&canvas.Config{BaseURL: "https://school.instructure.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  courses, err := cli.Courses().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = courses
//	}
//
// # Discovery
//
// Discover probes an ordered list of candidate base URLs with the same token
// and reports the first one whose current-user lookup succeeds. Every probe is
// recorded as a ProbeAttempt, so a token rejected by a real Canvas instance can
// be told apart from a host that is not Canvas at all.
package canvasclient
