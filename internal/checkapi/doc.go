// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checkapi provides the HTTP client for the email check endpoint.
//
// The endpoint is a single route, GET /check/{email}, answering with a JSON
// verdict for one address. A 2xx response carries the verdict; anything else
// carries {"message": "..."} explaining the rejection.
//
// # Key Types
//
//   - Client: rate-limited HTTP client for the check endpoint
//   - CheckResult: decoded verdict with tolerant accessors for named checks
//   - SubCheck: one {checked, value} pair inside a verdict
//   - ClientError: typed failure (network, rejected, invalid response, timeout)
//
// # Usage
//
//	client := checkapi.NewClient(checkapi.DefaultConfig())
//	result, err := client.Check(ctx, "test@example.com")
//	if err != nil {
//	    var cerr *checkapi.ClientError
//	    if errors.As(err, &cerr) && cerr.Type == checkapi.ErrTypeRejected {
//	        fmt.Println("server said:", cerr.Message)
//	    }
//	}
//	fmt.Println(result.RiskLevel())
package checkapi
