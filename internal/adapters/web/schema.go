package web

import (
	"net/http"
	"sync"

	"github.com/invopop/jsonschema"
)

var listingSchemaOnce = sync.OnceValue(func() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&listResponse{})
	s.Title = "Listing"
	s.Description = "One page of live records of an entity with its period statistics."
	return s
})

// listingSchema handles GET /api/schema/listing.
func (h *Handler) listingSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	writeJSON(w, listingSchemaOnce())
}
