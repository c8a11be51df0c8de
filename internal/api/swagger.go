package api

import (
	_ "embed"
	"net/http"
)

//go:embed swagger.json
var swaggerDoc []byte

// swaggerJSON serves the API document the swagger UI loads.
func swaggerJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(swaggerDoc)
}

// RegisterSwaggerDoc mounts the raw document; the UI itself is mounted in
// main so the api package stays free of the swagger UI dependency.
func RegisterSwaggerDoc(mux *http.ServeMux) {
	mux.HandleFunc("GET /swagger/doc.json", swaggerJSON)
}
