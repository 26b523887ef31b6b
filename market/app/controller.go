package app

import (
	"github.com/curiohq/curio/market/endpoint"
	"goji.io"
	"goji.io/pat"
)

// Controller binds the API
type Controller struct{}

// Bind registers the API routes.
func (c *Controller) Bind(
	mux *goji.Mux,
) {
	// Authenticated.
	mux.HandleFunc(pat.Post("/items"), endpoint.HandlerFor(endpoint.EndPtMintItem))
	mux.HandleFunc(pat.Post("/items/:item/listings"), endpoint.HandlerFor(endpoint.EndPtCreateListing))
	mux.HandleFunc(pat.Post("/items/:item/listings/cancel"), endpoint.HandlerFor(endpoint.EndPtCancelListing))
	mux.HandleFunc(pat.Post("/items/:item/buy"), endpoint.HandlerFor(endpoint.EndPtBuyItem))
	mux.HandleFunc(pat.Post("/roles"), endpoint.HandlerFor(endpoint.EndPtGrantRole))
	mux.HandleFunc(pat.Post("/roles/revoke"), endpoint.HandlerFor(endpoint.EndPtRevokeRole))
	mux.HandleFunc(pat.Post("/parameters"), endpoint.HandlerFor(endpoint.EndPtSetParameters))
	mux.HandleFunc(pat.Post("/deposits"), endpoint.HandlerFor(endpoint.EndPtCreateDeposit))
	mux.HandleFunc(pat.Get("/balances/:username"), endpoint.HandlerFor(endpoint.EndPtRetrieveBalance))

	// Public.
	mux.HandleFunc(pat.Post("/users"), endpoint.HandlerFor(endpoint.EndPtCreateUser))
	mux.HandleFunc(pat.Get("/items"), endpoint.HandlerFor(endpoint.EndPtListItems))
	mux.HandleFunc(pat.Get("/items/:item"), endpoint.HandlerFor(endpoint.EndPtRetrieveItem))
	mux.HandleFunc(pat.Get("/items/:item/listing"), endpoint.HandlerFor(endpoint.EndPtRetrieveListing))
	mux.HandleFunc(pat.Get("/items/:item/royalty"), endpoint.HandlerFor(endpoint.EndPtRetrieveRoyalty))
	mux.HandleFunc(pat.Get("/items/:item/events"), endpoint.HandlerFor(endpoint.EndPtListEvents))
	mux.HandleFunc(pat.Get("/items/:item/transfers"), endpoint.HandlerFor(endpoint.EndPtListTransfers))
	mux.HandleFunc(pat.Get("/roles/:role/:username"), endpoint.HandlerFor(endpoint.EndPtRetrieveRole))
	mux.HandleFunc(pat.Get("/parameters"), endpoint.HandlerFor(endpoint.EndPtRetrieveParameters))
}
