// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the causes of failed redirect hops.
//
// The categories are used by httpredir.Error to answer Timeout, by the
// metrics plug-in to label failed executions, and are handy for callers
// who want to decide for themselves whether a failed request is worth
// sending again (the redirect engine never retries on its own).
//
// Package transient depends only on the standard library.
package transient
