// Package api provides the read-only REST API of keen-tap.
//
// The API exposes the same queries as the status, self-check and interfaces commands.
// It never changes kernel state: start and stop are only available from the CLI.
//
// # Endpoints
//
//	GET /api/v1/health
//	GET /api/v1/status?interface_a=veth0&interface_b=veth1
//	GET /api/v1/check?interface_a=veth0&interface_b=veth1
//	GET /api/v1/interfaces
//
// The pair parameters may be omitted when [tap] is set in the configuration file.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "not_found",
//	    "message": "Human-readable error message"
//	  }
//	}
package api
