// Package api serves belt routing over HTTP.
//
// # Endpoints
//
//	GET    /healthz              liveness probe
//	POST   /v1/routes            route a problem (JSON or TOML body)
//	GET    /v1/routes            list stored results, newest first
//	GET    /v1/routes/{id}       fetch a result (?format=json|text|dot|svg)
//	DELETE /v1/routes/{id}       forget a result
//
// Routing options are query parameters on POST: attempts, ordering, seed,
// max_tunnel and refresh. A problem that cannot be routed still produces a
// stored result with solved=false; only malformed requests fail.
//
// Every request runs on a freshly built map, so handlers share nothing but
// the [pipeline.Runner] and the [store.Store], both safe for concurrent use.
//
// Errors are JSON objects carrying the code from package errors:
//
//	{"error": {"code": "INVALID_PROBLEM", "message": "..."}}
package api
