// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the timeout of each
// redirect hop. A generic interface for timeout policies is provided,
// Policy, along with the built-in policies DefaultPolicy and Infinite
// and the constructors Fixed and Budget.
//
// The timeout of a hop covers sending the request, receiving the
// response headers, and either reading the final response body or
// discarding the body of a redirect response.
package timeout
