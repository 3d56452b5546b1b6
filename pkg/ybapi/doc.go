// Package ybapi provides the request and cache layer for the YugabyteDB
// Managed API: operation descriptors, request building, cache keys, a
// deduplicating query client, and a mutation executor.
//
// # Overview
//
// Every endpoint is described once by an Operation: a name, an HTTP method, a
// "/v1"-relative path template, and the path and query parameter names it
// accepts. Operation.Build turns a Params bag into a Request with the path
// placeholders substituted and percent-encoded, the declared query parameters
// attached, and, for writing methods, the remaining entries lifted into the
// body. Operations are normally declared at package level:
//
//	var GetRelease = ybapi.MustOperation(ybapi.OperationSpec{
//	  Name:       "GetRelease",
//	  Method:     http.MethodGet,
//	  Path:       "/public/accounts/{accountId}/software/tracks/{trackId}/releases/{releaseId}",
//	  PathParams: []string{"accountId", "trackId", "releaseId"},
//	})
//
// Most consumers should use the ybclient package to construct a Client and
// call the typed resource clients exposed here.
//
// # Cache keys
//
// DeriveKey combines the resource tag ("/v1/..." plus the API version), a
// pagination Cursor, and the canonical form of the parameters. Two bags
// holding the same defined values produce the same key regardless of
// insertion order; entries set to nil are ignored.
//
// # Queries
//
// QueryClient.Fetch executes a read operation. Concurrent callers asking for
// the same key share one transport call and receive the same outcome. A
// successful result is served from the Cache without a transport call for
// the configured stale time. Invalidate, InvalidateResource, Remove and Clear
// evict state; a result that arrives after its key was invalidated is
// discarded.
//
//	payload, err := queries.Fetch(ctx, GetRelease, ybapi.Params{
//	  "accountId": "acc1", "trackId": "t1", "releaseId": "r1",
//	})
//
// Subscribe registers an Observer that sees every QueryState transition of a
// key (idle, loading, success, error).
//
// # Pagination
//
// QueryClient.Infinite returns an InfiniteQuery that walks a list operation
// page by page using the continuation token found in each payload. Pages are
// kept in request order and a second FetchNextPage while one is outstanding
// fails with ErrPageFetchInProgress. Paginate walks every page for a single
// caller.
//
// # Mutations
//
// MutationClient.Mutate executes a writing operation. Results are never
// cached; hooks registered with WithOnSuccess run after a successful call and
// typically invalidate affected queries.
//
// # Errors
//
// Parameter problems surface as a ConstructionError or ValidationError (both
// matching ErrInvalidParams) before any transport call. API errors are
// represented by APIError; helpers such as IsNotFound, IsUnauthorized and
// IsForbidden branch on common cases.
//
// # Telemetry
//
// WithMeterProvider and WithTracerProvider attach OpenTelemetry providers that
// record fetch outcomes and spans for every transport call.
package ybapi
