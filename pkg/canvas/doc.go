// Package canvas provides types, interfaces, and helpers for working with the
// Canvas LMS REST API (/api/v1).
//
// # Overview
//
// The canvas package defines the read-only domain types (User, Course,
// Student, Assignment) and the interfaces of the resource clients
// (UsersClient, CoursesClient, AssignmentsClient). A concrete implementation
// is provided by the canvasclient package, which wires configuration,
// transport and authentication.
//
// Getting a client
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
//	  cli, err := canvasclient.NewWithToken("https://school.instructure.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  courses, err := cli.Courses().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = canvas.FindCourse(courses, "6725")
//	}
//
// # Pagination
//
// Canvas list endpoints return JSON arrays and link the following page through
// the Link header. Resource clients drain every page before returning;
// PaginationIterator and FetchAllPages are the building blocks they use.
//
// # Errors
//
// Non-2xx responses are returned as *ResponseError, which matches
// ErrAuthentication, ErrAuthorization and ErrResourceNotFound (404) through
// errors.Is. A 401 carrying a WWW-Authenticate challenge means the token was
// rejected (ErrAuthentication); a bare 401 or a 403 means the token lacks a
// permission (ErrAuthorization). Transport failures wrap ErrNetwork.
package canvas
