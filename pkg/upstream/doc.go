// Package upstream contains thin clients for the public REST APIs the
// dashboard depends on: randomuser.me for the user directory, Nager.Date for
// public holidays and Hello Salut for greetings.
//
// Every call is a single GET with the caller's context. Nothing is retried
// or cached; a non-2xx answer is returned as a *StatusError.
package upstream
