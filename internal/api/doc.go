// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the JSON API onto service.BrandKitService
// and maps every error to a status code and a safe, kind-tagged body in one
// place (errors.go).
package api
