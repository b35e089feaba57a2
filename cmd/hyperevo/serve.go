package main

import (
	"net/http"

	"github.com/tutu-network/hyperevo/internal/hostapi"
)

func serveHostAPI(addr string, s *hostapi.Server) error {
	return http.ListenAndServe(addr, s.Handler())
}
