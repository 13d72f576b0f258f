package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/trace"
)

type httpAPIService struct {
	srv    *http.Server
	logger flogger
}

func newRouter(handler *APIHandler, preview http.Handler) *mux.Router {
	r := mux.NewRouter()

	// api server, behind auth
	api := r.PathPrefix("/api").Subrouter()
	api.Use(handler.BasicAuth)
	api.HandleFunc("/status", handler.apiStatus).Methods("GET")
	api.HandleFunc("/off", handler.apiOff).Methods("POST")
	api.HandleFunc("/show-current-time", handler.apiShowCurrentTime).Methods("POST")
	api.HandleFunc("/start-timer", handler.apiStartTimer).Methods("POST")
	api.HandleFunc("/cancel-timer", handler.apiCancelTimer).Methods("POST")
	api.HandleFunc("/change-color", handler.apiChangeColor).Methods("POST")
	api.HandleFunc("/change-multiple-colors", handler.apiChangeMultipleColors).Methods("POST")
	api.HandleFunc("/start-animation", handler.apiStartAnimation).Methods("POST")
	api.HandleFunc("/stop-animation", handler.apiStopAnimation).Methods("POST")
	api.HandleFunc("/stop-blink", handler.apiStopBlink).Methods("POST")

	// debugging
	r.Handle("/display.png", preview).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/debug/events", trace.Events)

	// root handler
	r.HandleFunc("/", handler.rootHandler)
	return r
}

func (h *httpAPIService) launch(handler *APIHandler, preview http.Handler, addr string) {
	h.logger = &ThreadLogger{name: "API"}
	h.srv = &http.Server{Addr: addr, Handler: newRouter(handler, preview)}

	wg.Add(1)
	go func() {
		defer wg.Done()
		h.logger.Printf("http server listening on %s", addr)
		err := h.srv.ListenAndServe()
		if err != http.ErrServerClosed {
			h.logger.Printf("http server: %v", err)
		}
		h.logger.Println("exiting api service")
	}()
}

func (h *httpAPIService) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Printf("http shutdown: %v", err)
	}
}
