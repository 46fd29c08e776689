package server

import (
	"net/http"
)

// NewCallbackServer builds the one-route HTTP server that waits for the
// OAuth redirect at /callback.
func NewCallbackServer(addr string, handler *OAuthHandler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/callback", handler)

	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
