// Package fetch retrieves remote resources over HTTP.
//
// Every failure (transport error, non-2xx status, body read error, invalid
// UTF-8 in text mode) is reported as a *FetchError naming the URL. Callers
// decide whether a failure is fatal; this package never retries.
package fetch
