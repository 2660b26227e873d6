// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard decides what a protected dashboard page may do with the
current session.

The decision is a pure function of (session state, admin flag, page
requirement). It performs no I/O and triggers no side effects; translating
a redirect decision into an actual HTTP redirect is the caller's job.
*/
package guard

import "github.com/taibuivan/trackline/internal/dashboard/session"

// Decision is the guard's verdict for one page render.
type Decision int

const (
	// ShowLoading means the session has not settled; render nothing yet.
	ShowLoading Decision = iota

	// RedirectLogin means there is no usable identity.
	RedirectLogin

	// RedirectHome means the identity is valid but lacks the admin role.
	RedirectHome

	// Render means the page may proceed.
	Render
)

// String implements fmt.Stringer for log output.
func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show_loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decide maps the session onto a [Decision] for a page that may require
// the admin role.
//
// # Rules
//
//   - An unsettled session always shows loading, never a premature redirect.
//   - Anonymous sessions go to login regardless of the page.
//   - Authenticated non-admins are bounced home from admin pages, not to
//     login: they have an identity, just not the role.
func Decide(store *session.Store, requireAdmin bool) Decision {
	switch store.State() {
	case session.StateLoading:
		return ShowLoading
	case session.StateAnonymous:
		return RedirectLogin
	case session.StateAuthenticated:
		if requireAdmin && !store.IsAdmin() {
			return RedirectHome
		}
		return Render
	default:
		return RedirectLogin
	}
}
