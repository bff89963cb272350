// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpredir provides an HTTP client which resolves redirect chains
according to a pluggable policy while preserving request semantics
across hops.

Create a Client and build requests with it:

	client, err := httpredir.NewClient()
	...
	e, err := client.Get("https://example.com/a").Send()
	...
	e, err := client.Post("https://example.com/form").
		Form(url.Values{"key": {"value"}}).
		Send()
	...
	e, err := client.Put("https://example.com/doc").
		Header("If-Match", etag).
		JSON(doc).
		Send()

Every send returns a request.Execution holding the final response, its
fully buffered body, and the URLs visited on the way (Execution.Via).

Redirects with status 301, 302 and 303 drop the request body and turn
any method other than GET or HEAD into GET. Redirects with status 307
and 308 keep method and body, and are not followed when the body is a
stream which cannot be sent twice. Each followed redirect carries a
Referer header naming the previous URL. Credentials and cookies are
removed when a redirect leaves the current host, unless
Config.KeepSensitiveHeaders is set.

Which redirects are followed is decided by a redirect.Policy:

	client.SetRedirect(redirect.Chain(
		redirect.Hosts("example.com", "*.example.com"),
		redirect.Limit(5),
	))

The default policy, redirect.Default, stops chains which loop or grow
too long with an *Error of kind RedirectLoop or TooManyRedirects.

Hop timeouts are set with a timeout.Policy, or simply:

	client.SetTimeout(10 * time.Second)

To hook into the redirect loop, install handlers in a HandlerGroup
before creating the client. Packages logging and metrics provide
ready-made handlers:

	handlers := &httpredir.HandlerGroup{}
	logging.Install(handlers, logger)
	metrics.NewCollector(prometheus.DefaultRegisterer).Install(handlers)
	client, err := httpredir.NewClientWithConfig(httpredir.Config{
		Handlers: handlers,
	})
*/
package httpredir
