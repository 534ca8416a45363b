// Package views renders pages from html/template files embedded in the
// binary. Each page is exposed as a templ.Component so handlers render it
// through internal.Context like any other component.
//
// Layout implements internal.Layout: the public shell is a bare centered
// frame used by the login page, the private shell adds the navigation, the
// greeting and the logout form. The active navigation entry is derived
// from the matched route pattern.
package views
